package validator

import (
	"log"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cadastro-livre/backend/pkg/cpf"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("cpf", cpfValidator)
		if err != nil {
			log.Fatal("register cpf validator failed")
		}
	}
}

var cpfValidator validator.Func = func(fl validator.FieldLevel) bool {
	return cpf.Valid(cpf.Normalize(fl.Field().String()))
}
