package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// SettingKeys returns the JSON names of every setting, sorted
func SettingKeys() []string {
	t := reflect.TypeOf(Settings{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := jsonName(t.Field(i)); name != "" {
			keys = append(keys, name)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetSettingsExample uses reflection to generate example settings
// This automatically stays in sync when new fields are added to Settings
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := jsonName(field)
		if name == "" {
			continue
		}
		example[name] = generateExampleValue(field.Type, name)
	}

	return example
}

// SetSettingValue parses value according to the field type and assigns it
// to the setting named by its JSON key. An empty value clears the setting.
func SetSettingValue(s *Settings, key, value string) error {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonName(field) != key {
			continue
		}
		target := v.Field(i)

		if value == "" {
			target.Set(reflect.Zero(field.Type))
			return nil
		}

		elemType := field.Type
		if elemType.Kind() == reflect.Ptr {
			elemType = elemType.Elem()
		}

		parsed := reflect.New(elemType).Elem()
		switch elemType.Kind() {
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("setting '%s' expects true or false, got '%s'", key, value)
			}
			parsed.SetBool(b)
		case reflect.Int:
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("setting '%s' expects an integer, got '%s'", key, value)
			}
			if n < 0 {
				return fmt.Errorf("setting '%s' must not be negative", key)
			}
			parsed.SetInt(int64(n))
		case reflect.String:
			parsed.SetString(value)
		default:
			return fmt.Errorf("setting '%s' has unsupported type %s", key, elemType)
		}

		if field.Type.Kind() == reflect.Ptr {
			ptr := reflect.New(elemType)
			ptr.Elem().Set(parsed)
			target.Set(ptr)
		} else {
			target.Set(parsed)
		}
		return nil
	}

	return fmt.Errorf("unknown setting '%s' (valid: %s)", key, strings.Join(SettingKeys(), ", "))
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

// generateExampleValue creates appropriate example values based on type and field name
func generateExampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		switch t.Elem().Kind() {
		case reflect.Bool:
			return fieldName == "history_enabled"
		case reflect.Int:
			switch fieldName {
			case "explorer_read_timeout_seconds":
				return DefaultExplorerReadTimeoutSeconds
			case "max_log_files":
				return 1000
			case "max_response_bytes":
				return 8192
			case "queue_size":
				return 16
			case "ssh_port":
				return DefaultSSHPort
			default:
				return 0
			}
		}
	}

	if t.Kind() == reflect.String {
		switch fieldName {
		case "address":
			return DefaultAddress
		case "ssh_host":
			return DefaultSSHHost
		case "user":
			return "admin"
		default:
			return "example"
		}
	}

	return nil
}
