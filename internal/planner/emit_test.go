package planner

import (
	"reflect"
	"testing"

	goversion "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floor(s string) *goversion.Version {
	return goversion.Must(goversion.NewVersion(s))
}

// chainPackages builds the classic three-package chain: every tree
// declares AC_PREREQ([2.65]) and ships no configure script.
func chainPackages() []*Package {
	reqs := Requirements{Autoconf: floor("2.65"), Automake: floor("1.9.6")}
	return []*Package{
		{
			Name: "autoconf",
			Versions: []*Version{{
				Package: "autoconf", Version: "2.69", Tag: "autoconf-2.69",
				Strategy: StrategyAutoreconf, Requirements: reqs,
			}},
		},
		{
			Name: "automake",
			Versions: []*Version{{
				Package: "automake", Version: "1.15", Tag: "automake-1.15",
				Strategy: StrategyBootstrap, Requirements: reqs,
			}},
		},
		{
			Name: "libtool",
			Versions: []*Version{{
				Package: "libtool", Version: "2.4.6", Tag: "libtool-2.4.6",
				Strategy: StrategyBootstrapSh, Requirements: reqs,
			}},
		},
	}
}

func TestEmitGraphChainScenario(t *testing.T) {
	g, dropped := EmitGraph(chainPackages(), EmitOptions{})

	// all + 2 base tools + 3 x (extract, install, alias) + 3 umbrellas.
	require.Len(t, g.Targets, 15)

	all := g.Targets[0]
	assert.Equal(t, "all", all.Name)
	assert.True(t, all.Phony)
	assert.Equal(t, []string{"autoconf", "automake", "libtool"}, all.Prereqs)

	// autoconf bootstraps from the host: base tools only, no floor edges.
	acInstall := g.Lookup("$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
	require.NotNil(t, acInstall)
	assert.Equal(t, []string{
		"$(AUTOPLAN_BUILD)/autoconf-2.69/.extracted",
		"$(AUTOPLAN_TOOLS)/bin/m4",
		"$(AUTOPLAN_TOOLS)/bin/makeinfo",
	}, acInstall.Prereqs)

	// automake picks up the freshly planned autoconf for its 2.65 floor.
	amInstall := g.Lookup("$(AUTOPLAN_TOOLS)/automake-1.15/.installed")
	require.NotNil(t, amInstall)
	assert.Contains(t, amInstall.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
	assert.Contains(t, amInstall.Commands[0], "$(AUTOPLAN_TOOLS)/autoconf-2.69/bin")

	// libtool depends on both planned tools.
	ltInstall := g.Lookup("$(AUTOPLAN_TOOLS)/libtool-2.4.6/.installed")
	require.NotNil(t, ltInstall)
	assert.Contains(t, ltInstall.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
	assert.Contains(t, ltInstall.Prereqs, "$(AUTOPLAN_TOOLS)/automake-1.15/.installed")

	// Umbrellas fan out to the per-version aliases.
	for _, name := range []string{"autoconf", "automake", "libtool"} {
		umbrella := g.Lookup(name)
		require.NotNil(t, umbrella, name)
		assert.True(t, umbrella.Phony)
		require.Len(t, umbrella.Prereqs, 1)
	}
	assert.Equal(t, []string{"autoconf-2.69"}, g.Lookup("autoconf").Prereqs)

	// Floors nothing planned could satisfy were dropped, not failed:
	// autoconf's own floor, autoconf's automake floor (planned later),
	// automake's self floor.
	require.Len(t, dropped, 3)
	assert.True(t, dropped[0].Self)
	assert.Equal(t, "autoconf", dropped[0].Package)
	assert.False(t, dropped[1].Self)
	assert.Equal(t, ToolAutomake, dropped[1].Floor.Tool)
	assert.True(t, dropped[2].Self)
	assert.Equal(t, "automake", dropped[2].Package)
}

func TestEmitGraphExtractionChain(t *testing.T) {
	reqs := Requirements{Autoconf: floor("2.59")}
	pkgs := []*Package{{
		Name: "autoconf",
		Versions: []*Version{
			{Package: "autoconf", Version: "2.59", Tag: "autoconf-2.59", Strategy: StrategyAutoreconf, Requirements: reqs},
			{Package: "autoconf", Version: "2.64", Tag: "autoconf-2.64", Strategy: StrategyAutoreconf, Requirements: reqs},
			{Package: "autoconf", Version: "2.69", Tag: "autoconf-2.69", Strategy: StrategyAutoreconf, Requirements: reqs},
		},
	}}

	g, _ := EmitGraph(pkgs, EmitOptions{})

	first := g.Lookup("$(AUTOPLAN_BUILD)/autoconf-2.59/.extracted")
	require.NotNil(t, first)
	assert.Empty(t, first.Prereqs, "first extraction has nothing to wait for")

	second := g.Lookup("$(AUTOPLAN_BUILD)/autoconf-2.64/.extracted")
	require.NotNil(t, second)
	assert.Equal(t, []string{"$(AUTOPLAN_BUILD)/autoconf-2.59/.extracted"}, second.Prereqs)

	third := g.Lookup("$(AUTOPLAN_BUILD)/autoconf-2.69/.extracted")
	require.NotNil(t, third)
	assert.Equal(t, []string{"$(AUTOPLAN_BUILD)/autoconf-2.64/.extracted"}, third.Prereqs)

	// Later versions also build on the earlier install.
	install := g.Lookup("$(AUTOPLAN_TOOLS)/autoconf-2.64/.installed")
	require.NotNil(t, install)
	assert.Contains(t, install.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.59/.installed")

	// And the self floor now resolves to the earliest planned version.
	last := g.Lookup("$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
	require.NotNil(t, last)
	assert.Contains(t, last.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.59/.installed")
	assert.NotContains(t, last.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
}

func TestEmitGraphFloorPicksEarliestSatisfying(t *testing.T) {
	pkgs := []*Package{
		{
			Name: "autoconf",
			Versions: []*Version{
				{Package: "autoconf", Version: "2.64", Tag: "autoconf-2.64", Strategy: StrategyAutoreconf},
				{Package: "autoconf", Version: "2.69", Tag: "autoconf-2.69", Strategy: StrategyAutoreconf},
			},
		},
		{
			Name: "automake",
			Versions: []*Version{{
				Package: "automake", Version: "1.15", Tag: "automake-1.15",
				Strategy:     StrategyBootstrap,
				Requirements: Requirements{Autoconf: floor("2.60")},
			}},
		},
	}

	g, _ := EmitGraph(pkgs, EmitOptions{})
	install := g.Lookup("$(AUTOPLAN_TOOLS)/automake-1.15/.installed")
	require.NotNil(t, install)
	assert.Contains(t, install.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.64/.installed",
		"the earliest satisfying version wins")
	assert.NotContains(t, install.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
}

func TestEmitGraphNeverDependsOnLaterVersions(t *testing.T) {
	// Declared out of order: the automake floor on autoconf cannot bind
	// to a build planned later, so it goes to the host instead.
	pkgs := []*Package{
		{
			Name: "automake",
			Versions: []*Version{{
				Package: "automake", Version: "1.15", Tag: "automake-1.15",
				Strategy:     StrategyBootstrap,
				Requirements: Requirements{Autoconf: floor("2.65")},
			}},
		},
		{
			Name: "autoconf",
			Versions: []*Version{{
				Package: "autoconf", Version: "2.69", Tag: "autoconf-2.69",
				Strategy: StrategyAutoreconf,
			}},
		},
	}

	g, dropped := EmitGraph(pkgs, EmitOptions{})
	install := g.Lookup("$(AUTOPLAN_TOOLS)/automake-1.15/.installed")
	require.NotNil(t, install)
	assert.NotContains(t, install.Prereqs, "$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")

	require.Len(t, dropped, 1)
	assert.Equal(t, ToolAutoconf, dropped[0].Floor.Tool)
	assert.False(t, dropped[0].Self)
}

func TestEmitGraphBaseToolsOverride(t *testing.T) {
	pkgs := chainPackages()
	g, _ := EmitGraph(pkgs, EmitOptions{BaseTools: []string{"m4", "makeinfo", "help2man"}})

	install := g.Lookup("$(AUTOPLAN_TOOLS)/autoconf-2.69/.installed")
	require.NotNil(t, install)
	assert.Contains(t, install.Prereqs, "$(AUTOPLAN_TOOLS)/bin/help2man")
}

func TestEmitGraphBaseToolRules(t *testing.T) {
	g, _ := EmitGraph(chainPackages(), EmitOptions{})

	for _, tool := range []string{"m4", "makeinfo"} {
		rule := g.Lookup("$(AUTOPLAN_TOOLS)/bin/" + tool)
		require.NotNil(t, rule, tool)
		assert.False(t, rule.Phony)
		assert.Empty(t, rule.Prereqs)
		require.Len(t, rule.Commands, 3)
		assert.Contains(t, rule.Commands[0], "command -v "+tool)
		assert.Contains(t, rule.Commands[2], "ln -sf")
	}
}

func TestEmitGraphExtractCommands(t *testing.T) {
	pkgs := []*Package{{
		Name:       "autoconf",
		Repository: "autoconf.git",
		Versions: []*Version{{
			Package: "autoconf", Version: "2.69", Tag: "v2.69", Strategy: StrategyNone,
		}},
	}}

	g, _ := EmitGraph(pkgs, EmitOptions{})
	extract := g.Lookup("$(AUTOPLAN_BUILD)/autoconf-2.69/.extracted")
	require.NotNil(t, extract)
	assert.Equal(t, []string{
		"mkdir -p $(AUTOPLAN_BUILD)",
		"cd $(AUTOPLAN_MIRRORS)/autoconf.git && git checkout -f -q v2.69 && git clean -d -f -x -q",
		"rm -rf $(AUTOPLAN_BUILD)/autoconf-2.69",
		"cp -pR $(AUTOPLAN_MIRRORS)/autoconf.git $(AUTOPLAN_BUILD)/autoconf-2.69",
		"touch $@",
	}, extract.Commands)
}

func TestEmitGraphInstallCommands(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		bug      bool
		want     string
	}{
		{
			"configure shipped",
			StrategyNone, false,
			"cd $(AUTOPLAN_BUILD)/m4-1.4.17 && export PATH=\"$(AUTOPLAN_TOOLS)/bin:$$PATH\" && " +
				"./configure --prefix=$(AUTOPLAN_TOOLS)/m4-1.4.17 && $(MAKE) && $(MAKE) install",
		},
		{
			"gnulib bootstrap",
			StrategyGnulib, false,
			"cd $(AUTOPLAN_BUILD)/m4-1.4.17 && export PATH=\"$(AUTOPLAN_TOOLS)/bin:$$PATH\" && " +
				"./bootstrap --skip-po --no-git --gnulib-srcdir=$(AUTOPLAN_GNULIB) && " +
				"./configure --prefix=$(AUTOPLAN_TOOLS)/m4-1.4.17 && $(MAKE) && $(MAKE) install",
		},
		{
			"bootstrap.sh under strict mode",
			StrategyBootstrapSh, false,
			"cd $(AUTOPLAN_BUILD)/m4-1.4.17 && export PATH=\"$(AUTOPLAN_TOOLS)/bin:$$PATH\" && " +
				"set -e && . ./bootstrap.sh && " +
				"./configure --prefix=$(AUTOPLAN_TOOLS)/m4-1.4.17 && $(MAKE) && $(MAKE) install",
		},
		{
			"autoreconf with stale stamp workaround",
			StrategyAutoreconf, true,
			"cd $(AUTOPLAN_BUILD)/m4-1.4.17 && export PATH=\"$(AUTOPLAN_TOOLS)/bin:$$PATH\" && " +
				"touch stamp-h.in && autoreconf -i -I m4 && " +
				"./configure --prefix=$(AUTOPLAN_TOOLS)/m4-1.4.17 && $(MAKE) && $(MAKE) install",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkgs := []*Package{{
				Name: "m4",
				Versions: []*Version{{
					Package: "m4", Version: "1.4.17", Tag: "v1.4.17",
					Strategy: tt.strategy, AutoheaderBug: tt.bug,
				}},
			}}
			g, _ := EmitGraph(pkgs, EmitOptions{})
			install := g.Lookup("$(AUTOPLAN_TOOLS)/m4-1.4.17/.installed")
			require.NotNil(t, install)
			require.Len(t, install.Commands, 2)
			assert.Equal(t, tt.want, install.Commands[0])
			assert.Equal(t, "touch $@", install.Commands[1])
		})
	}
}

func TestEmitGraphDeterministic(t *testing.T) {
	first, _ := EmitGraph(chainPackages(), EmitOptions{})
	second, _ := EmitGraph(chainPackages(), EmitOptions{})
	assert.True(t, reflect.DeepEqual(first, second), "same input must yield an identical graph")
}

func TestBuildGraphPhonies(t *testing.T) {
	g, _ := EmitGraph(chainPackages(), EmitOptions{})
	assert.Equal(t, []string{
		"all",
		"autoconf-2.69", "autoconf",
		"automake-1.15", "automake",
		"libtool-2.4.6", "libtool",
	}, g.Phonies())
}
