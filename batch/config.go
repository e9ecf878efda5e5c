package batch

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"
)

const DefaultSeries = "calc_result"

type ConfigExpression struct {
	Series     string `json:"series"`
	Expression string `json:"expression"`
}

type Config struct {
	Strict      bool               `json:"strict"`
	MaxDepth    int                `json:"max_depth"`
	LuaCheck    bool               `json:"lua_check"`
	Expressions []ConfigExpression `json:"expressions"`
}

func ParseConfig(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Expressions) == 0 {
		return nil, errors.New("config has no expressions")
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid max_depth: %v", cfg.MaxDepth)
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(raw)
}
