package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"crm-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var compiledSchemas = make(map[string]*jsonschema.Schema)

// Ключи сущностей сворачиваются без учета регистра, чтобы
// Validate("Property", ...) и Validate("property", ...) были эквивалентны.
var keyFolder = cases.Fold()

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		log.Fatalf("failed to read embedded schemas: %v", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		file, err := schemaFS.Open(path.Join("schemas", name))
		if err != nil {
			log.Fatalf("failed to open schema %s: %v", name, err)
		}
		url := "crm-service/" + strings.TrimSuffix(name, ".json")
		if err := compiler.AddResource(url, file); err != nil {
			log.Fatalf("failed to add schema %s: %v", name, err)
		}
		schema, err := compiler.Compile(url)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", name, err)
		}
		compiledSchemas[keyFolder.String(strings.TrimSuffix(name, ".json"))] = schema
	}
}

// Validate проверяет тело запроса по схеме сущности. Ошибки схемы
// возвращаются как domain.ValidationError со списком полевых сообщений,
// невалидный JSON - как обычная ошибка.
func Validate(entity string, body []byte) error {
	schema, ok := compiledSchemas[keyFolder.String(entity)]
	if !ok {
		return fmt.Errorf("schema for entity '%s' not found", entity)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("request body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return domain.NewValidationError(flattenCauses(ve))
		}
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// flattenCauses собирает листовые причины - промежуточные узлы вроде
// allOf дублируют текст детей и в ответе клиенту не нужны.
func flattenCauses(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		return []string{formatCause(ve)}
	}
	var out []string
	for _, cause := range ve.Causes {
		out = append(out, flattenCauses(cause)...)
	}
	return out
}

func formatCause(ve *jsonschema.ValidationError) string {
	field := strings.TrimPrefix(ve.InstanceLocation, "/")
	if field == "" {
		field = "body"
	}
	return fmt.Sprintf("%s: %s", strings.ReplaceAll(field, "/", "."), ve.Message)
}
