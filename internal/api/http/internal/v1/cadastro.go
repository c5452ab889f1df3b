package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cadastro-livre/backend/internal/service"
	"github.com/cadastro-livre/backend/pkg/logger"
)

func (h *Handler) initCadastroRoutes(api *gin.RouterGroup) {
	cadastros := api.Group("/cadastros")

	cadastros.POST("", h.createCadastro)
	cadastros.GET("/confirmar", h.confirmCadastro)
}

type createCadastroRequest struct {
	Email         string `json:"email"`
	Senha         string `json:"senha"`
	TermosAceitos bool   `json:"termos_aceitos"`
	CPF           string `json:"cpf"`

	NomeCompleto   string `json:"nome_completo"`
	Telefone       string `json:"telefone"`
	DataNascimento string `json:"data_nascimento"`
	CEP            string `json:"cep"`
	Logradouro     string `json:"logradouro"`
	Numero         string `json:"numero"`
	Complemento    string `json:"complemento"`
	Bairro         string `json:"bairro"`
	Cidade         string `json:"cidade"`
	Estado         string `json:"estado"`
}

type createCadastroResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

func (h *Handler) createCadastro(c *gin.Context) {
	var req createCadastroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	out, err := h.services.Registrations.Register(c.Request.Context(), service.RegisterInput{
		Email:          req.Email,
		Senha:          req.Senha,
		TermosAceitos:  req.TermosAceitos,
		CPF:            req.CPF,
		NomeCompleto:   req.NomeCompleto,
		Telefone:       req.Telefone,
		DataNascimento: req.DataNascimento,
		CEP:            req.CEP,
		Logradouro:     req.Logradouro,
		Numero:         req.Numero,
		Complemento:    req.Complemento,
		Bairro:         req.Bairro,
		Cidade:         req.Cidade,
		Estado:         req.Estado,
	})

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		newErrorResponse(c, http.StatusBadRequest, validationMessage(validationErr))
	case errors.Is(err, service.ErrAlreadyRegistered):
		newErrorResponse(c, http.StatusConflict, "E-mail ou CPF já cadastrado.")
	case err != nil:
		// Diagnostic detail stays in the server log, never in the body.
		logger.Logger().Error("create cadastro failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Erro interno ao salvar os dados.")
	default:
		c.JSON(http.StatusCreated, createCadastroResponse{
			Message: "Cadastro realizado com sucesso! Redirecionando...",
			Email:   out.Email,
		})
	}
}

func validationMessage(err *service.ValidationError) string {
	switch err.Reason {
	case service.ReasonInvalidFormat:
		return "O formato do e-mail é inválido. Verifique o endereço."
	case service.ReasonInvalidIdentifier:
		return "O CPF fornecido é inválido. Verifique os números."
	default:
		return "Dados essenciais (e-mail, senha, termos e CPF) ausentes."
	}
}

type confirmCadastroRequest struct {
	Token string `form:"token" binding:"required"`
}

func (h *Handler) confirmCadastro(c *gin.Context) {
	var req confirmCadastroRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.String(http.StatusBadRequest, "Token de confirmação ausente.")
		return
	}

	err := h.services.Registrations.Confirm(c.Request.Context(), req.Token)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		c.Redirect(http.StatusFound, h.loginRedirect("invalid_token"))
	case err != nil:
		logger.Logger().Error("confirm cadastro failed", zap.Error(err))
		c.Redirect(http.StatusFound, h.loginRedirect("error_confirming"))
	default:
		c.Redirect(http.StatusFound, h.loginRedirect("confirmed"))
	}
}

func (h *Handler) loginRedirect(status string) string {
	return fmt.Sprintf("%s?status=%s", h.config.App.LoginURL, status)
}
