// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rulesBlock = `rules:
  - DOMAIN-SUFFIX,local,DIRECT
  - IP-CIDR,127.0.0.0/8,DIRECT
  - IP-CIDR,10.0.0.0/8,DIRECT
  - IP-CIDR,192.168.0.0/16,DIRECT
  - GEOIP,CN,DIRECT
  - MATCH,PROXY
`

func TestCompose_ExactTemplate(t *testing.T) {
	c := NewDefault()

	got := c.Compose("- name: x", "- x")
	want := `proxies:
  - name: x

proxy-groups:
  - name: PROXY
    type: select
    proxies:
      - x
      - DIRECT
      - REJECT

` + rulesBlock

	assert.Equal(t, want, got)
}

func TestCompose_MultipleLinesKeepOrderAndIndent(t *testing.T) {
	c := NewDefault()
	entries := "- {name: a, type: ss}\n- {name: b, type: trojan}\n- {name: c, type: vless}"
	groups := "- \"a\"\n- \"b\"\n- \"c\""

	doc := c.Compose(entries, groups)
	lines := strings.Split(doc, "\n")

	require.Equal(t, "proxies:", lines[0])
	assert.Equal(t, "  - {name: a, type: ss}", lines[1])
	assert.Equal(t, "  - {name: b, type: trojan}", lines[2])
	assert.Equal(t, "  - {name: c, type: vless}", lines[3])
	assert.Equal(t, "", lines[4])
	assert.Equal(t, "proxy-groups:", lines[5])
	assert.Equal(t, `      - "a"`, lines[9])
	assert.Equal(t, `      - "b"`, lines[10])
	assert.Equal(t, `      - "c"`, lines[11])
	assert.Equal(t, "      - DIRECT", lines[12])
	assert.Equal(t, "      - REJECT", lines[13])
}

func TestCompose_NoLinesDroppedOrAdded(t *testing.T) {
	c := NewDefault()
	empty := c.Compose("", "")
	scaffold := strings.Count(empty, "\n") - 2 // one empty line per dynamic block

	tests := []struct {
		name    string
		entries string
		groups  string
	}{
		{"single", "a", "b"},
		{"interior blank lines", "a\n\nb", "x\n\n\ny"},
		{"trailing whitespace", "a  \n\tb", " x "},
		{"trailing newline", "a\n", "x\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := c.Compose(tc.entries, tc.groups)
			entryLines := strings.Split(tc.entries, "\n")
			groupLines := strings.Split(tc.groups, "\n")

			assert.Equal(t, scaffold+len(entryLines)+len(groupLines), strings.Count(doc, "\n"))

			for _, line := range entryLines {
				assert.Contains(t, doc, "\n"+EntryIndent+line+"\n")
			}
			for _, line := range groupLines {
				assert.Contains(t, doc, "\n"+MemberIndent+line+"\n")
			}
		})
	}
}

func TestCompose_Deterministic(t *testing.T) {
	c := NewDefault()
	first := c.Compose("- name: a\n- name: b", "- a\n- b")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Compose("- name: a\n- name: b", "- a\n- b"))
	}
	assert.Equal(t, first, NewDefault().Compose("- name: a\n- name: b", "- a\n- b"))
}

func TestCompose_EmptyInputIsTotal(t *testing.T) {
	doc := NewDefault().Compose("", "")

	assert.True(t, strings.HasPrefix(doc, "proxies:\n  \n\nproxy-groups:\n"))
	assert.Contains(t, doc, "    proxies:\n      \n      - DIRECT\n")
	assert.True(t, strings.HasSuffix(doc, "  - MATCH,PROXY\n"))
}

func TestCompose_CustomTemplate(t *testing.T) {
	c := New(Template{
		GroupName: "Auto",
		GroupType: "url-test",
		Fallbacks: []string{"DIRECT"},
		Rules:     []string{},
	}, "")

	got := c.Compose("- name: x", "- x")
	want := `proxies:
  - name: x

proxy-groups:
  - name: Auto
    type: url-test
    proxies:
      - x
      - DIRECT

rules:
  - MATCH,Auto
`
	assert.Equal(t, want, got)
}

func TestNew_TemplateIsCopied(t *testing.T) {
	rules := []string{"GEOIP,CN,DIRECT"}
	c := New(Template{Rules: rules}, "")
	before := c.Compose("a", "b")

	rules[0] = "MATCH,REJECT"
	assert.Equal(t, before, c.Compose("a", "b"))
}

func TestReset_ReturnsCapturedPlaceholder(t *testing.T) {
	c := NewDefault()
	assert.Equal(t, Placeholder(DefaultTemplate()), c.Reset())

	custom := New(DefaultTemplate(), "# paste here\n")
	custom.Compose("a", "b")
	assert.Equal(t, "# paste here\n", custom.Reset())
}

func TestPlaceholder_SharesScaffolding(t *testing.T) {
	doc := Placeholder(DefaultTemplate())

	assert.True(t, strings.HasPrefix(doc, "proxies:\n  # "))
	assert.Contains(t, doc, "      - DIRECT\n      - REJECT\n")
	assert.True(t, strings.HasSuffix(doc, rulesBlock))
	require.NoError(t, Lint(doc))
}

func TestLint(t *testing.T) {
	c := NewDefault()

	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name: "composed flow entries",
			doc: c.Compose(
				"- {name: hk-01, type: vmess, server: a.example, port: 443, uuid: u, alterId: 0, cipher: auto, network: ws, tls: true, udp: true}",
				`- "hk-01"`,
			),
		},
		{name: "unclosed flow sequence", doc: "proxies: [a, b\n", wantErr: "not valid YAML"},
		{name: "missing rules", doc: "proxies: []\nproxy-groups: []\n", wantErr: `no "rules" key`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Lint(tc.doc)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
