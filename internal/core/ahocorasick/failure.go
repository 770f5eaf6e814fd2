package ahocorasick

import perr "acsearch/internal/platform/errors"

// bfsEdge is a (parent, child, edge rune) triple queued during the
// breadth-first failure-link computation.
type bfsEdge struct {
	parent NodeID
	child  NodeID
	ch     rune
}

// computeFailureLinks assigns fail_to to every non-root node via a
// breadth-first traversal from the root's children. Children are enqueued
// before their own failure link is resolved, which is safe because
// resolving a node's failure link only ever reads already-resolved,
// strictly shallower ancestors.
func (a *Automaton) computeFailureLinks() error {
	queue := make([]bfsEdge, 0, len(a.nodes))
	for _, l := range a.rootNode().next {
		queue = append(queue, bfsEdge{parent: rootID, child: l.To, ch: l.Ch})
	}

	for len(queue) > 0 {
		edge := queue[0]
		queue = queue[1:]

		current, err := a.getNode(edge.child)
		if err != nil {
			return err
		}
		for _, l := range current.next {
			queue = append(queue, bfsEdge{parent: edge.child, child: l.To, ch: l.Ch})
		}

		if edge.parent == rootID {
			a.nodes[edge.child].failTo = rootID
			continue
		}

		parent, err := a.getNode(edge.parent)
		if err != nil {
			return err
		}
		if parent.failTo == noNode {
			return perr.MissingLinkf("node %d has no failure link yet", edge.parent)
		}

		probeID := parent.failTo
		for {
			probe, err := a.getNode(probeID)
			if err != nil {
				return err
			}
			if next := probe.followLink(edge.ch); next != noNode {
				a.nodes[edge.child].failTo = next
				break
			}
			if probeID == rootID {
				a.nodes[edge.child].failTo = rootID
				break
			}
			if probe.failTo == noNode {
				return perr.MissingLinkf("node %d has no failure link yet", probeID)
			}
			probeID = probe.failTo
		}
	}

	return nil
}
