package adapter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/graybeam/testpolicy/internal/model"
)

// LoadRuleInfo decodes id, language, severity and message from every embedded
// anti-pattern rule file. The rule body itself stays opaque; only the engine
// interprets it.
func LoadRuleInfo() (map[string]m.RuleInfo, error) {
	entries, err := policyRules.ReadDir("rules")
	if err != nil {
		return nil, fmt.Errorf("read embedded rules: %w", err)
	}

	rules := make(map[string]m.RuleInfo, len(entries))

	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		content, err := policyRules.ReadFile("rules/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read embedded rule %s: %w", entry.Name(), err)
		}

		var info m.RuleInfo
		if err := yaml.Unmarshal(content, &info); err != nil {
			return nil, fmt.Errorf("parse embedded rule %s: %w", entry.Name(), err)
		}

		if info.ID == "" {
			return nil, fmt.Errorf("embedded rule %s has no id", entry.Name())
		}

		rules[info.ID] = info
	}

	return rules, nil
}
