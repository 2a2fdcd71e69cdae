package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"ofsconsole/internal/config"
	"ofsconsole/internal/logging"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"show" help:"Show settings file location, current values and available options" default:"1"`
	Set  SettingsSetCmd  `cmd:"set" help:"Change one setting (empty value clears it)"`
}

// SettingsShowCmd displays current settings and the available keys
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	current, err := config.LoadSettings()
	if err != nil {
		return err
	}
	example := config.GetSettingsExample()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"current":       current,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	writeSettingsTable(os.Stdout, currentValues(current), example)

	fmt.Println()
	fmt.Println("Change a value with: ofsconsole settings set <key> <value>")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}

// currentValues maps each setting key to its configured value, or nil when unset
func currentValues(s *config.Settings) map[string]any {
	values := make(map[string]any)
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		field := v.Field(i)
		switch {
		case field.Kind() == reflect.Ptr && field.IsNil():
			values[name] = nil
		case field.Kind() == reflect.Ptr:
			values[name] = field.Elem().Interface()
		case field.IsZero():
			values[name] = nil
		default:
			values[name] = field.Interface()
		}
	}
	return values
}

func writeSettingsTable(out io.Writer, current, example map[string]any) {
	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tCURRENT\tEXAMPLE")
	for _, key := range keys {
		value := "(unset)"
		if v := current[key]; v != nil {
			value = fmt.Sprintf("%v", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%v\n", key, value, example[key])
	}
	w.Flush()
}

// SettingsSetCmd writes one setting to settings.json
type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key (see 'settings show')"`
	Value string `arg:"" optional:"" help:"New value; omit to clear the setting"`
}

// Run executes the set command
func (s *SettingsSetCmd) Run(cli *CLI) error {
	err := config.UpdateSettings(func(settings *config.Settings) error {
		return config.SetSettingValue(settings, s.Key, s.Value)
	})
	if err != nil {
		return err
	}

	logging.Logger.Info("Setting updated", "key", s.Key, "value", s.Value)
	if s.Value == "" {
		fmt.Printf("Cleared %s\n", s.Key)
	} else {
		fmt.Printf("Set %s = %s\n", s.Key, s.Value)
	}
	return nil
}
