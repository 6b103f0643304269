package ast

// NodeID addresses a node inside a Tree. Zero means "absent".
type NodeID uint32

const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
