package checks

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// decodeArgs decodes a detector's override map into out. Unknown keys are
// rejected so typos in .goalscan.yaml surface instead of being ignored.
func decodeArgs(id string, params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(params); err != nil {
		return fmt.Errorf("detector %q parameters: %w", id, err)
	}
	return nil
}

// orDefault returns v unless it is empty.
func orDefault[T any](v, def []T) []T {
	if len(v) == 0 {
		return def
	}
	return v
}

func orDefaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
