package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/cadastro-livre/backend/internal/domain"
)

const uniqueViolation = pq.ErrorCode("23505")

type registrationRepository struct {
	db *sqlx.DB
}

func newRegistrationRepository(db *sqlx.DB) *registrationRepository {
	return &registrationRepository{
		db: db,
	}
}

func (r *registrationRepository) Create(ctx context.Context, registration *domain.Registration) error {
	const query = `
	INSERT INTO cadastro
	(id, nome_completo, email, telefone, data_nascimento, cpf, senha_hash,
	 cep, logradouro, numero, complemento, bairro, cidade, estado,
	 termos_aceitos, email_confirmado, confirmacao_token)
	VALUES (:id, :nome_completo, :email, :telefone, :data_nascimento, :cpf, :senha_hash,
	 :cep, :logradouro, :numero, :complemento, :bairro, :cidade, :estado,
	 :termos_aceitos, :email_confirmado, :confirmacao_token);
	`

	if _, err := r.db.NamedExecContext(ctx, query, registration); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert cadastro: %w", err)
	}

	return nil
}

func (r *registrationRepository) GetByEmail(ctx context.Context, email string) (*domain.Registration, error) {
	const query = `
	SELECT id, nome_completo, email, telefone, data_nascimento, cpf, senha_hash,
	       cep, logradouro, numero, complemento, bairro, cidade, estado,
	       termos_aceitos, email_confirmado, confirmacao_token, created_at, updated_at
	FROM cadastro WHERE email = $1;
	`

	var registration domain.Registration
	if err := r.db.GetContext(ctx, &registration, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select cadastro by email failed: %w", err)
	}

	return &registration, nil
}

// ConfirmByToken is the single serialization point of the confirmation
// transition: the conditional UPDATE is a compare-and-clear, so two
// concurrent consumptions of one token update exactly one row once.
func (r *registrationRepository) ConfirmByToken(ctx context.Context, token string) error {
	const query = `
	UPDATE cadastro
	SET email_confirmado = true, confirmacao_token = NULL, updated_at = now()
	WHERE confirmacao_token = $1;
	`

	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("db update cadastro confirmation: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update cadastro confirmation rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
