// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package compose assembles a complete Clash configuration document from the
// two blobs returned by the conversion engine.
//
// Compose is pure: the same entries and group text always produce the same
// bytes. Engine lines are treated as opaque text and are only split on "\n"
// so they can be re-indented under their keys.
package compose

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EntryIndent prefixes every proxy entry line under the "proxies:" key.
	EntryIndent = "  "
	// MemberIndent prefixes every group member line under the group's "proxies:" key.
	MemberIndent = "      "
)

// =============================================================================
// TEMPLATE
// =============================================================================

// Template holds the fixed scaffolding around the two dynamic blocks.
type Template struct {
	// GroupName names the single proxy group; the catch-all rule points at it.
	GroupName string
	// GroupType is the Clash group type (select, url-test, fallback, ...).
	GroupType string
	// Fallbacks are literal members appended after the dynamic ones.
	Fallbacks []string
	// Rules are the routing rules written before the final MATCH rule.
	Rules []string
}

// DefaultTemplate returns the stock scaffolding.
func DefaultTemplate() Template {
	return Template{
		GroupName: "PROXY",
		GroupType: "select",
		Fallbacks: []string{"DIRECT", "REJECT"},
		Rules: []string{
			"DOMAIN-SUFFIX,local,DIRECT",
			"IP-CIDR,127.0.0.0/8,DIRECT",
			"IP-CIDR,10.0.0.0/8,DIRECT",
			"IP-CIDR,192.168.0.0/16,DIRECT",
			"GEOIP,CN,DIRECT",
		},
	}
}

// withDefaults fills empty fields from DefaultTemplate.
func (t Template) withDefaults() Template {
	d := DefaultTemplate()
	if t.GroupName == "" {
		t.GroupName = d.GroupName
	}
	if t.GroupType == "" {
		t.GroupType = d.GroupType
	}
	if t.Fallbacks == nil {
		t.Fallbacks = d.Fallbacks
	}
	if t.Rules == nil {
		t.Rules = d.Rules
	}
	// Copy so later edits to the caller's slices cannot change our output.
	t.Fallbacks = append([]string(nil), t.Fallbacks...)
	t.Rules = append([]string(nil), t.Rules...)
	return t
}

// =============================================================================
// COMPOSER
// =============================================================================

// Composer builds populated documents and remembers the placeholder document
// captured when it was created.
type Composer struct {
	tmpl        Template
	placeholder string
}

// New creates a Composer. An empty placeholder selects the built-in guidance
// document for tmpl.
func New(tmpl Template, placeholder string) *Composer {
	tmpl = tmpl.withDefaults()
	if placeholder == "" {
		placeholder = Placeholder(tmpl)
	}
	return &Composer{tmpl: tmpl, placeholder: placeholder}
}

// NewDefault creates a Composer with the stock template and placeholder.
func NewDefault() *Composer {
	return New(DefaultTemplate(), "")
}

// Template returns the scaffolding in use.
func (c *Composer) Template() Template {
	return c.tmpl
}

// Compose returns the full configuration document for the given engine output.
func (c *Composer) Compose(entriesText, groupRefText string) string {
	var sb strings.Builder

	sb.WriteString("proxies:\n")
	writeIndented(&sb, EntryIndent, entriesText)
	sb.WriteString("\n")

	c.writeGroup(&sb, func(sb *strings.Builder) {
		writeIndented(sb, MemberIndent, groupRefText)
	})
	sb.WriteString("\n")

	c.writeRules(&sb)
	return sb.String()
}

// Reset returns the placeholder document captured at construction.
func (c *Composer) Reset() string {
	return c.placeholder
}

// Placeholder renders the guidance document shown before any conversion.
func Placeholder(tmpl Template) string {
	c := &Composer{tmpl: tmpl.withDefaults()}

	var sb strings.Builder
	sb.WriteString("proxies:\n")
	sb.WriteString(EntryIndent + "# Converted proxy entries appear here.\n")
	sb.WriteString(EntryIndent + "# Paste share links on the left and press ctrl+s.\n")
	sb.WriteString("\n")

	c.writeGroup(&sb, func(sb *strings.Builder) {
		sb.WriteString(MemberIndent + "# Converted group members appear here.\n")
	})
	sb.WriteString("\n")

	c.writeRules(&sb)
	return sb.String()
}

func (c *Composer) writeGroup(sb *strings.Builder, members func(*strings.Builder)) {
	sb.WriteString("proxy-groups:\n")
	sb.WriteString("  - name: " + c.tmpl.GroupName + "\n")
	sb.WriteString("    type: " + c.tmpl.GroupType + "\n")
	sb.WriteString("    proxies:\n")
	members(sb)
	for _, fallback := range c.tmpl.Fallbacks {
		sb.WriteString(MemberIndent + "- " + fallback + "\n")
	}
}

func (c *Composer) writeRules(sb *strings.Builder) {
	sb.WriteString("rules:\n")
	for _, rule := range c.tmpl.Rules {
		sb.WriteString("  - " + rule + "\n")
	}
	sb.WriteString("  - MATCH," + c.tmpl.GroupName + "\n")
}

// writeIndented writes every line of text with prefix. Empty lines are kept.
func writeIndented(sb *strings.Builder, prefix, text string) {
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// =============================================================================
// LINT
// =============================================================================

// Lint reports whether doc parses as YAML and carries the three top-level keys
// of a Clash configuration.
func Lint(doc string) error {
	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(doc), &parsed); err != nil {
		return fmt.Errorf("document is not valid YAML: %w", err)
	}
	for _, key := range []string{"proxies", "proxy-groups", "rules"} {
		if _, ok := parsed[key]; !ok {
			return fmt.Errorf("document has no %q key", key)
		}
	}
	return nil
}
