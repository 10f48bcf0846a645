package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Load carrega a configuração do cliente a partir de um arquivo YAML,
// aplica overrides de variáveis de ambiente (tags "env"/"envDefault")
// e valida o resultado (tags "validate").
func Load(path string) (*ClientConfig, error) {
	cfg := &ClientConfig{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("erro ao interpretar YAML: %w", err)
		}
	}

	if err := applyEnv(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	return cfg, nil
}

// MustLoad é similar ao Load, mas panic em caso de erro.
func MustLoad(path string) *ClientConfig {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// applyEnv processa recursivamente uma struct aplicando valores de
// variáveis de ambiente sobre o que veio do YAML.
func applyEnv(val reflect.Value) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		defaultTag := fieldType.Tag.Get("envDefault")
		if envTag == "" && defaultTag == "" {
			continue
		}

		envValue := ""
		if envTag != "" {
			envValue = os.Getenv(envTag)
		}

		// Variável de ambiente sobrepõe o YAML; o default só entra
		// quando nem o YAML nem o ambiente definiram o campo.
		if envValue == "" {
			if !field.IsZero() {
				continue
			}
			envValue = defaultTag
		}
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    envTag,
				Value:     envValue,
				Err:       err,
			}
		}
	}

	return nil
}

// setFieldValue define o valor de um campo baseado no seu tipo.
func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

// FieldError indica falha de conversão em um campo específico.
type FieldError struct {
	FieldName string
	EnvVar    string
	Value     string
	Err       error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("campo %s (env %s): valor %q inválido: %v", e.FieldName, e.EnvVar, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// UnsupportedTypeError indica um tipo de campo sem conversão suportada.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("tipo não suportado: %s", e.Type)
}
