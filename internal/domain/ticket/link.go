package ticket

import (
	"fmt"

	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
)

// Link is a typed, directed relation between two tickets.
type Link struct {
	SourceID uint
	TargetID uint
	Type     vo.LinkType
}

func NewLink(sourceID, targetID uint, linkType vo.LinkType) (Link, error) {
	if sourceID == 0 || targetID == 0 {
		return Link{}, fmt.Errorf("both tickets are required")
	}
	if sourceID == targetID {
		return Link{}, fmt.Errorf("a ticket cannot be linked to itself")
	}
	if !linkType.IsValid() {
		return Link{}, fmt.Errorf("invalid link type: %q", linkType)
	}
	return Link{SourceID: sourceID, TargetID: targetID, Type: linkType}, nil
}
