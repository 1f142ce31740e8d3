package splitter

import (
	"fmt"
	"strings"

	"github.com/erraggy/oasplit/document"
	"github.com/erraggy/oasplit/internal/pathutil"
	"github.com/erraggy/oasplit/oaserrors"
)

// UntaggedLabel is the group holding operations without tags.
const UntaggedLabel = "untagged"

// Group is a labeled, ordered set of operations that becomes one split document.
type Group struct {
	Label     string
	Endpoints []document.Endpoint
}

// PathCount returns the number of distinct paths in the group.
func (g Group) PathCount() int {
	return document.DistinctPaths(g.Endpoints)
}

// groupSet keeps groups in first-seen label order.
type groupSet struct {
	groups []Group
	index  map[string]int
}

func newGroupSet() *groupSet {
	return &groupSet{index: make(map[string]int)}
}

func (gs *groupSet) add(label string, ep document.Endpoint) {
	i, ok := gs.index[label]
	if !ok {
		i = len(gs.groups)
		gs.index[label] = i
		gs.groups = append(gs.groups, Group{Label: label})
	}
	gs.groups[i].Endpoints = append(gs.groups[i].Endpoints, ep)
}

// mappedEndpoints lists the operations that are mappings, warning about the rest.
func (s *Splitter) mappedEndpoints() []document.Endpoint {
	all := document.ListOperations(s.doc, s.log)
	out := all[:0:0]
	for _, ep := range all {
		if _, ok := ep.Operation.(*document.Map); !ok {
			s.log.Warn("invalid operation, skipping", "method", strings.ToUpper(ep.Method), "path", ep.Path)
			continue
		}
		out = append(out, ep)
	}
	return out
}

// GroupByTag groups operations by tag, in the order tags are first seen.
//
// An operation with several tags lands in each of their groups. Operations
// without tags are collected into a trailing "untagged" group; if a tag is
// literally named "untagged", they join that group instead.
func (s *Splitter) GroupByTag() []Group {
	gs := newGroupSet()
	var untagged []document.Endpoint
	for _, ep := range s.mappedEndpoints() {
		tags := document.OperationTags(ep.Operation)
		if len(tags) == 0 {
			untagged = append(untagged, ep)
			continue
		}
		for _, tag := range tags {
			gs.add(tag, ep)
		}
	}
	for _, ep := range untagged {
		gs.add(UntaggedLabel, ep)
	}
	return gs.groups
}

// PathPrefix returns the grouping label for path: its first segment with
// template braces removed, or "root" when nothing is left.
func PathPrefix(path string) string {
	prefix := strings.NewReplacer("{", "", "}", "").Replace(pathutil.FirstSegment(path))
	if prefix == "" {
		return "root"
	}
	return prefix
}

// GroupByPathPrefix groups operations by PathPrefix. A group with more than
// maxPerFile operations is cut, in order, into "{prefix}_part{K}" groups.
func (s *Splitter) GroupByPathPrefix(maxPerFile int) ([]Group, error) {
	if err := checkLimit(maxPerFile); err != nil {
		return nil, err
	}

	gs := newGroupSet()
	for _, ep := range s.mappedEndpoints() {
		gs.add(PathPrefix(ep.Path), ep)
	}

	var out []Group
	for _, g := range gs.groups {
		if len(g.Endpoints) <= maxPerFile {
			out = append(out, g)
			continue
		}
		for k, chunk := range chunks(g.Endpoints, maxPerFile) {
			out = append(out, Group{Label: fmt.Sprintf("%s_part%d", g.Label, k+1), Endpoints: chunk})
		}
	}
	return out, nil
}

// GroupBySize cuts the full operation list into consecutive chunks of
// operationsPerFile, labeled "Part 1", "Part 2", and so on. A path's methods
// may be spread over neighboring chunks.
func (s *Splitter) GroupBySize(operationsPerFile int) ([]Group, error) {
	if err := checkLimit(operationsPerFile); err != nil {
		return nil, err
	}

	var out []Group
	for i, chunk := range chunks(document.ListOperations(s.doc, s.log), operationsPerFile) {
		out = append(out, Group{Label: fmt.Sprintf("Part %d", i+1), Endpoints: chunk})
	}
	return out, nil
}

func chunks(endpoints []document.Endpoint, size int) [][]document.Endpoint {
	var out [][]document.Endpoint
	for start := 0; start < len(endpoints); start += size {
		end := min(start+size, len(endpoints))
		out = append(out, endpoints[start:end])
	}
	return out
}

func checkLimit(n int) error {
	if n < 1 {
		return &oaserrors.ConfigError{
			Option:  "max-operations",
			Value:   n,
			Message: "must be at least 1",
		}
	}
	return nil
}
