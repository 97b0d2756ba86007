package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNegative = errors.New("negative weight")

type fitConfig struct {
	weight float64
	label  string
	calls  []string
}

func withWeight(w float64) Option[*fitConfig] {
	return New(func(c *fitConfig) error {
		if w < 0 {
			return errNegative
		}
		c.weight = w
		c.calls = append(c.calls, "weight")

		return nil
	})
}

func withLabel(label string) Option[*fitConfig] {
	return NoError(func(c *fitConfig) {
		c.label = label
		c.calls = append(c.calls, "label")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &fitConfig{}
		err := Apply(cfg, withLabel("gate"), withWeight(0.5), withLabel("gate 2"))

		require.NoError(t, err)
		require.Equal(t, 0.5, cfg.weight)
		require.Equal(t, "gate 2", cfg.label)
		require.Equal(t, []string{"label", "weight", "label"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &fitConfig{}
		err := Apply(cfg, withWeight(2), withWeight(-1), withLabel("unreached"))

		require.ErrorIs(t, err, errNegative)
		require.Equal(t, 2.0, cfg.weight)
		require.Empty(t, cfg.label)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &fitConfig{}
		require.NoError(t, Apply(cfg, nil, withLabel("x")))
		require.Equal(t, "x", cfg.label)
	})

	t.Run("no options leaves target untouched", func(t *testing.T) {
		cfg := &fitConfig{weight: 3}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 3.0, cfg.weight)
		require.Empty(t, cfg.calls)
	})
}

func TestMustApply(t *testing.T) {
	cfg := &fitConfig{}
	require.NotPanics(t, func() { MustApply(cfg, withWeight(1)) })
	require.Equal(t, 1.0, cfg.weight)

	require.PanicsWithError(t, errNegative.Error(), func() {
		MustApply(cfg, withWeight(-3))
	})
}

func TestPrimitiveTarget(t *testing.T) {
	var n int
	require.NoError(t, Apply(&n, NoError(func(p *int) { *p = 42 })))
	require.Equal(t, 42, n)
}
