// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

// Leveled is a value tagged with the indentation it had in the source.
type Leveled[T any] struct {
	Depth int
	Value T
}

// ForestOptions controls how BuildForest reads indentation.
type ForestOptions struct {
	// EqualDepthSiblings makes a row at the same depth as the previous row
	// its sibling. When false, such a row opens a child block under the
	// previous row, which is how the report has always been read.
	EqualDepthSiblings bool
}

// frame is an open node on the builder stack. blockDepth is the depth its
// children are built at, or -1 until the first child arrives.
type frame[T any] struct {
	node       *Tree[T]
	blockDepth int
}

// BuildForest reconstructs the forest described by items, which must be in
// source order. Children keep source order.
func BuildForest[T any](items []Leveled[T], opts ForestOptions) []*Tree[T] {
	if opts.EqualDepthSiblings {
		return buildSiblingForest(items)
	}
	return buildNestedForest(items)
}

// buildNestedForest reads items with one row of lookahead: after a node,
// a next row at a depth greater than or equal to the node's opens a child
// block at that depth, and every further row is built at the depth of the
// innermost block that has not been closed by a shallower row. Roots are
// built at depth 0.
func buildNestedForest[T any](items []Leveled[T]) []*Tree[T] {
	var roots []*Tree[T]
	var stack []frame[T]
	for _, item := range items {
		if len(stack) == 0 {
			root := &Tree[T]{Depth: 0, Value: item.Value}
			roots = append(roots, root)
			stack = append(stack, frame[T]{node: root, blockDepth: -1})
			continue
		}
		q := item.Depth
		top := &stack[len(stack)-1]
		if q >= top.node.Depth {
			// Child block of the previous row.
			top.blockDepth = q
			child := &Tree[T]{Depth: q, Value: item.Value}
			top.node.Children = append(top.node.Children, child)
			stack = append(stack, frame[T]{node: child, blockDepth: -1})
			continue
		}
		// The previous row is a leaf. Close blocks until one accepts q.
		stack = stack[:len(stack)-1]
		var parent *frame[T]
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if q >= f.blockDepth {
				parent = f
				break
			}
			stack = stack[:len(stack)-1]
		}
		if parent == nil {
			root := &Tree[T]{Depth: 0, Value: item.Value}
			roots = append(roots, root)
			stack = append(stack, frame[T]{node: root, blockDepth: -1})
			continue
		}
		child := &Tree[T]{Depth: parent.blockDepth, Value: item.Value}
		parent.node.Children = append(parent.node.Children, child)
		stack = append(stack, frame[T]{node: child, blockDepth: -1})
	}
	return roots
}

// buildSiblingForest is the conventional indentation reading: a row is a
// child of the nearest preceding row with a smaller depth.
func buildSiblingForest[T any](items []Leveled[T]) []*Tree[T] {
	var roots []*Tree[T]
	var stack []*Tree[T]
	for _, item := range items {
		node := &Tree[T]{Depth: item.Depth, Value: item.Value}
		for len(stack) > 0 && stack[len(stack)-1].Depth >= item.Depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
	}
	return roots
}
