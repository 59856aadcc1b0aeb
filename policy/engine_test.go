package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicyAllows(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	assert.NoError(t, err)

	decision, err := engine.Evaluate(ctx, map[string]interface{}{
		"query":  "running shoes size 10",
		"intent": map[string]interface{}{"item": "running shoes"},
	})
	assert.NoError(t, err)
	assert.Equal(t, DecisionAllow, decision)
}

func TestDefaultPolicyBlocksProhibited(t *testing.T) {
	ctx := context.Background()
	engine, err := NewEngine(ctx, DefaultPolicy)
	assert.NoError(t, err)

	for _, query := range []string{
		"weapon replica",
		"cheap firearm holster",
		"counterfeit sneakers",
	} {
		decision, err := engine.Evaluate(ctx, map[string]interface{}{"query": query})
		assert.NoError(t, err)
		assert.Equal(t, DecisionBlock, decision, "query %q", query)
	}
}

func TestNewEngineRejectsBadPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "this is not rego")
	assert.Error(t, err)
}
