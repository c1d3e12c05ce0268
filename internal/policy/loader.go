package policy

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/eqtylab/cupcake/internal/defs"
)

// reservedKeys are Document keys that are never treated as event names.
var reservedKeys = map[string]bool{"settings": true, "imports": true}

// Discover locates the guardrails directory, starting from an explicit
// path if one is given, or by walking up from start looking for a
// directory named "guardrails". The search is deterministic: the nearest
// ancestor holding a guardrails directory wins.
func Discover(explicit, start string) (string, error) {
	if explicit != "" {
		if info, err := os.Stat(explicit); err == nil && info.IsDir() {
			return explicit, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNoGuardrailsDir, explicit)
	}

	dir := start
	for {
		candidate := filepath.Join(dir, defs.GuardrailsDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoGuardrailsDir
		}
		dir = parent
	}
}

// Load reads every *.yaml/*.yml fragment under dir (including anything
// named by an imports: glob), merges them deterministically, and returns
// the flattened policy set plus any settings overrides the root document
// declared. The flattened list is ordered by event name, then matcher key
// (both sorted), then the merged per-matcher policy order.
func Load(dir string) ([]FlatPolicy, map[string]any, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.y*ml"))
	if err != nil {
		return nil, nil, fmt.Errorf("policy: glob guardrails dir: %w", err)
	}
	sort.Strings(entries)

	merged := map[string]MatcherMap{}
	settings := map[string]any{}

	for _, path := range entries {
		doc, err := loadFragment(path)
		if err != nil {
			slog.Warn("policy: skipping unreadable fragment", "path", path, "error", err)
			continue
		}
		for k, v := range doc.Settings {
			settings[k] = v
		}
		mergeEvents(merged, doc.Events)

		for _, pattern := range doc.Imports {
			imported, err := expandImport(dir, pattern)
			if err != nil {
				slog.Warn("policy: skipping unreadable import", "pattern", pattern, "error", err)
				continue
			}
			for _, impPath := range imported {
				impDoc, err := loadFragment(impPath)
				if err != nil {
					slog.Warn("policy: skipping unreadable import", "path", impPath, "error", err)
					continue
				}
				mergeEvents(merged, impDoc.Events)
			}
		}
	}

	events := make([]string, 0, len(merged))
	for event := range merged {
		events = append(events, event)
	}
	sort.Strings(events)

	var flat []FlatPolicy
	for _, event := range events {
		matchers := merged[event]
		keys := make([]string, 0, len(matchers))
		for matcher := range matchers {
			keys = append(keys, matcher)
		}
		sort.Strings(keys)
		for _, matcher := range keys {
			for _, p := range matchers[matcher] {
				flat = append(flat, FlatPolicy{Event: event, Matcher: matcher, Policy: p})
			}
		}
	}

	return flat, settings, nil
}

func loadFragment(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for key := range reservedKeys {
		delete(doc.Events, key)
	}
	return &doc, nil
}

// expandImport resolves an imports: glob pattern (relative to the
// guardrails directory unless already absolute) deterministically.
func expandImport(baseDir, pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(baseDir, pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// mergeEvents concatenates src into dst in file-load order: two fragments
// declaring policies under the same (event, matcher) pair both contribute,
// neither overwrites the other.
func mergeEvents(dst map[string]MatcherMap, src map[string]MatcherMap) {
	for event, matchers := range src {
		if reservedKeys[event] {
			continue
		}
		dstMatchers, ok := dst[event]
		if !ok {
			dstMatchers = MatcherMap{}
			dst[event] = dstMatchers
		}
		for matcher, policies := range matchers {
			dstMatchers[matcher] = append(dstMatchers[matcher], policies...)
		}
	}
}
