package models

import (
	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

// parentFunc returns the parent of the node with the given ID, or an invalid nulls.UUID at the root
type parentFunc func(id uuid.UUID) (nulls.UUID, error)

// walkAncestors follows parent links upward from start, which is not itself included in the result. The walk
// is iterative and stops at the root or at the first node already visited. The returned bool is true if a
// cycle back to start or to an earlier ancestor was found.
func walkAncestors(start uuid.UUID, parent parentFunc) ([]uuid.UUID, bool, error) {
	visited := map[uuid.UUID]struct{}{start: {}}
	var ancestors []uuid.UUID

	next, err := parent(start)
	for err == nil && next.Valid {
		if _, seen := visited[next.UUID]; seen {
			return ancestors, true, nil
		}
		visited[next.UUID] = struct{}{}
		ancestors = append(ancestors, next.UUID)
		next, err = parent(next.UUID)
	}

	return ancestors, false, err
}

// childrenFunc returns the IDs of the immediate children of a node
type childrenFunc func(id uuid.UUID) ([]uuid.UUID, error)

// walkDescendants collects every node below start, breadth-first. Nodes reached more than once are
// included only once.
func walkDescendants(start uuid.UUID, children childrenFunc) ([]uuid.UUID, error) {
	visited := map[uuid.UUID]struct{}{start: {}}
	var descendants []uuid.UUID

	queue := []uuid.UUID{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		kids, err := children(id)
		if err != nil {
			return descendants, err
		}
		for _, k := range kids {
			if _, seen := visited[k]; seen {
				continue
			}
			visited[k] = struct{}{}
			descendants = append(descendants, k)
			queue = append(queue, k)
		}
	}

	return descendants, nil
}

// uniqueIDs removes duplicates, keeping the first occurrence of each ID
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
