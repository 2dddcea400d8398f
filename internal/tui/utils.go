package tui

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"orb/firescout/pkg/config"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
	"go.uber.org/zap/zapcore"
)

func BuildNavigationForStruct(structValue any) []ConfigItem {
	return buildNavigationForValue(reflect.ValueOf(structValue))
}

func buildNavigationForValue(v reflect.Value) []ConfigItem {
	var items []ConfigItem
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if fieldType.Tag.Get("display") == "-" {
			continue
		}

		items = append(items, ConfigItem{
			Name:     fieldType.Name,
			Value:    field.Interface(),
			IsStruct: field.Kind() == reflect.Struct,
		})
	}

	return items
}

// GetValueByPath walks a struct pointer down a list of field names.
func GetValueByPath(root any, path []string) any {
	current := reflect.ValueOf(root).Elem()
	for _, segment := range path {
		current = current.FieldByName(segment)
	}
	return current.Interface()
}

// Field operations
func UpdateField(root any, path []string, name string, value string) error {
	current := reflect.ValueOf(root).Elem()

	for _, segment := range path {
		current = current.FieldByName(segment)
	}

	field := current.FieldByName(name)
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	return setFieldValue(field, value)
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Type() {
	case reflect.TypeOf(time.Duration(0)):
		duration, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(duration))
	case reflect.TypeOf(zapcore.Level(0)):
		var level zapcore.Level
		err := level.UnmarshalText([]byte(value))
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(level))
	case reflect.TypeOf([]string{}):
		var parts []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		field.Set(reflect.ValueOf(parts))
	default:
		parsedValue := parseValue(value, field.Kind())
		field.Set(parsedValue.Convert(field.Type()))
	}
	return nil
}

func parseValue(value string, kind reflect.Kind) reflect.Value {
	switch kind {
	case reflect.Int, reflect.Int64:
		intVal, _ := strconv.ParseInt(value, 10, 64)
		return reflect.ValueOf(intVal)
	case reflect.Bool:
		boolVal, _ := strconv.ParseBool(value)
		return reflect.ValueOf(boolVal)
	default:
		return reflect.ValueOf(value)
	}
}

// Value formatting
func FormatValue(value any) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case zapcore.Level:
		return v.String()
	case []string:
		if len(v) == 0 {
			return `""`
		}
		return strings.Join(v, ",")
	case string:
		if v == "" {
			return `""`
		}
		return v
	case int, int64:
		return fmt.Sprintf("%d", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Config file operations

// LoadConfig replaces *cfg with the configuration described by an env
// file. Processing must start from a zero Config: envconfig leaves
// already-set fields alone, so layering onto the live config would keep
// every old value.
func LoadConfig(cfg *config.Config, path string) error {
	if err := godotenv.Overload(path); err != nil {
		return err
	}
	fresh := config.Config{}
	if err := envconfig.Process(context.Background(), &fresh); err != nil {
		return err
	}
	if err := fresh.Validate(); err != nil {
		return err
	}
	*cfg = fresh
	return nil
}

func SaveConfig(cfg *config.Config, path string) error {
	content := ConfigToEnv(cfg)
	return os.WriteFile(path, []byte(content), 0o644)
}

// Environment variable generation
func ConfigToEnv(cfg *config.Config) string {
	var result strings.Builder
	structToEnv(reflect.ValueOf(cfg).Elem(), "", &result)
	return result.String()
}

func structToEnv(v reflect.Value, prefix string, result *strings.Builder) {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanInterface() {
			continue
		}

		// secrets stay out of the on-screen dump
		if fieldType.Tag.Get("display") == "-" {
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		if field.Kind() == reflect.Struct {
			// For nested structs, extract prefix from tag like "env:\", prefix=API_\""
			newPrefix := extractEnvconfigPrefix(envTag)
			newPrefix = strings.TrimSuffix(newPrefix, "_")

			fullPrefix := newPrefix
			if prefix != "" {
				fullPrefix = prefix + "_" + newPrefix
			}
			structToEnv(field, fullPrefix, result)
		} else {
			envName := extractEnvconfigName(envTag)
			if envName != "" {
				fullEnvName := envName
				if prefix != "" {
					fullEnvName = prefix + "_" + envName
				}
				value := FormatValue(field.Interface())
				if value != "" && value != `""` {
					fmt.Fprintf(result, "%s=%s\n", fullEnvName, value)
				}
			}
		}
	}
}

func extractEnvconfigPrefix(tag string) string {
	// Parse tags like "env:\", prefix=API_\""
	parts := strings.SplitSeq(tag, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if after, ok := strings.CutPrefix(part, "prefix="); ok {
			return after
		}
	}
	return ""
}

func extractEnvconfigName(tag string) string {
	// Parse tags like "env:\"NAME\"" or "env:\"HOST, default=127.0.0.1\""
	if tag == "" {
		return ""
	}

	parts := strings.Split(tag, ",")
	if len(parts) == 0 {
		return ""
	}

	envName := strings.TrimSpace(parts[0])
	if envName == "" || strings.Contains(envName, "prefix=") {
		return ""
	}

	return envName
}
