// Package access classifies incoming requests into an access class from
// static ordered route tables. Classification is a pure function over the
// tables; unknown API routes fall through to a hard deny in the gate.
package access

import "strings"

type Class int

const (
	Unclassified Class = iota
	Public
	AgentOnly
	AdminOnly
	AgentOrAdmin
)

func (c Class) String() string {
	switch c {
	case Public:
		return "public"
	case AgentOnly:
		return "agent-only"
	case AdminOnly:
		return "admin-only"
	case AgentOrAdmin:
		return "agent-or-admin"
	default:
		return "unclassified"
	}
}

// Pattern is one route rule. Path is a template whose "{x}" segments
// match exactly one non-empty path segment; literal segments match
// byte-for-byte.
type Pattern struct {
	Method string
	Path   string
}

type table struct {
	class    Class
	patterns []Pattern
}

type Classifier struct {
	// tables in fixed priority order; the first table containing a
	// match wins.
	tables []table
}

func NewClassifier(public, agentOnly, adminOnly, agentOrAdmin []Pattern) *Classifier {
	return &Classifier{
		tables: []table{
			{class: Public, patterns: public},
			{class: AgentOnly, patterns: agentOnly},
			{class: AdminOnly, patterns: adminOnly},
			{class: AgentOrAdmin, patterns: agentOrAdmin},
		},
	}
}

// Classify returns the access class governing (method, path), or
// Unclassified when no table matches.
func (c *Classifier) Classify(method, path string) Class {
	for _, t := range c.tables {
		for _, p := range t.patterns {
			if p.Method != method {
				continue
			}
			if matchPath(p.Path, path) {
				return t.class
			}
		}
	}
	return Unclassified
}

func matchPath(template, path string) bool {
	if template == path {
		return true
	}
	tSegs := strings.Split(template, "/")
	pSegs := strings.Split(path, "/")
	if len(tSegs) != len(pSegs) {
		return false
	}
	for i, seg := range tSegs {
		if isWildcard(seg) {
			if pSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pSegs[i] {
			return false
		}
	}
	return true
}

func isWildcard(segment string) bool {
	return len(segment) >= 2 && segment[0] == '{' && segment[len(segment)-1] == '}'
}
