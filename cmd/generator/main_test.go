package main

import (
	"flag"
	"testing"
	"time"

	"github.com/lintang-b-s/Mazex/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configured() engine.Options {
	opts := engine.DefaultOptions().WithSize(31, 17)
	opts.Frontier = "stack"
	opts.FoldTurns = true
	return opts
}

func TestOptionsOnlyFromGivenFlags(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want func(o engine.Options) engine.Options
	}{
		{
			name: "no flags keep the configured options",
			args: nil,
			want: func(o engine.Options) engine.Options { return o },
		},
		{
			name: "width only",
			args: []string{"-width", "9"},
			want: func(o engine.Options) engine.Options { o.Width = 9; return o },
		},
		{
			name: "explicit default values still apply",
			args: []string{"-height", "20", "-fold_turns=false"},
			want: func(o engine.Options) engine.Options { o.Height = 20; o.FoldTurns = false; return o },
		},
		{
			name: "frontier",
			args: []string{"-frontier", "queue"},
			want: func(o engine.Options) engine.Options { o.Frontier = "queue"; return o },
		},
		{
			name: "flags unrelated to options",
			args: []string{"-count", "3", "-show_path=false"},
			want: func(o engine.Options) engine.Options { return o },
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cli := newCLIFlags("generator", flag.ContinueOnError)
			require.NoError(t, cli.fs.Parse(tt.args))
			assert.Equal(t, tt.want(configured()), cli.options(configured()))
		})
	}
}

func TestFirstSeed(t *testing.T) {
	now := func() time.Time { return time.Unix(0, 123456789) }

	testCases := []struct {
		name string
		args []string
		want int64
	}{
		{name: "default seed is zero", args: nil, want: 0},
		{name: "seed zero is reproducible", args: []string{"-seed", "0"}, want: 0},
		{name: "explicit seed", args: []string{"-seed", "42"}, want: 42},
		{name: "random seed", args: []string{"-random_seed"}, want: 123456789},
		{name: "random seed wins over seed", args: []string{"-seed", "42", "-random_seed"}, want: 123456789},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			cli := newCLIFlags("generator", flag.ContinueOnError)
			require.NoError(t, cli.fs.Parse(tt.args))
			assert.Equal(t, tt.want, cli.firstSeed(now))
		})
	}
}
