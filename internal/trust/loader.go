package trust

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"greenpass/internal/validator/ports"
)

// LoadFiles reads a rules file (JSON array of rules) and a keys file (JSON
// object of kid to certificate) and installs both. Empty paths are skipped.
func (m *Manager) LoadFiles(ctx context.Context, rulesPath, keysPath string) error {
	if rulesPath != "" {
		rules, err := ReadRulesFile(rulesPath)
		if err != nil {
			return err
		}
		if err := m.ReplaceRules(ctx, rules); err != nil {
			return fmt.Errorf("load %s: %w", rulesPath, err)
		}
	}
	if keysPath != "" {
		keys, err := ReadKeysFile(keysPath)
		if err != nil {
			return err
		}
		if err := m.ReplaceKeys(ctx, keys); err != nil {
			return fmt.Errorf("load %s: %w", keysPath, err)
		}
	}
	return nil
}

// ReadRulesFile decodes a JSON array of rules.
func ReadRulesFile(path string) ([]ports.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var rules []ports.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("decode rules file %s: %w", path, err)
	}
	return rules, nil
}

// ReadKeysFile decodes a JSON object mapping kid to a PEM or base64 DER
// certificate string.
func ReadKeysFile(path string) (map[string][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keys file: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode keys file %s: %w", path, err)
	}
	keys := make(map[string][]byte, len(raw))
	for kid, v := range raw {
		keys[kid] = []byte(v)
	}
	return keys, nil
}
