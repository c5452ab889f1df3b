package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Registration is one row of the cadastro table. Optional profile and
// address fields persist as NULL when the submission leaves them out.
type Registration struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	NomeCompleto     sql.NullString `db:"nome_completo" json:"nome_completo"`
	Email            string         `db:"email" json:"email"`
	Telefone         sql.NullString `db:"telefone" json:"telefone"`
	DataNascimento   sql.NullString `db:"data_nascimento" json:"data_nascimento"`
	CPF              string         `db:"cpf" json:"cpf"`
	SenhaHash        string         `db:"senha_hash" json:"-"`
	CEP              sql.NullString `db:"cep" json:"cep"`
	Logradouro       sql.NullString `db:"logradouro" json:"logradouro"`
	Numero           sql.NullString `db:"numero" json:"numero"`
	Complemento      sql.NullString `db:"complemento" json:"complemento"`
	Bairro           sql.NullString `db:"bairro" json:"bairro"`
	Cidade           sql.NullString `db:"cidade" json:"cidade"`
	Estado           sql.NullString `db:"estado" json:"estado"`
	TermosAceitos    bool           `db:"termos_aceitos" json:"termos_aceitos"`
	EmailConfirmado  bool           `db:"email_confirmado" json:"email_confirmado"`
	ConfirmacaoToken sql.NullString `db:"confirmacao_token" json:"-"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        *time.Time     `db:"updated_at" json:"updated_at"`
}
