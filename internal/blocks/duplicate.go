package blocks

import "fmt"

// DuplicateSubtree deep-copies a block subtree under fresh ids. Every block in
// the input gets a new id; parent, root, manual card-order and content-order
// references between blocks of the subtree are remapped to the new ids.
// References pointing outside the subtree are left as-is. The returned map
// translates old ids to new ones.
func DuplicateSubtree(subtree []Block, rootID string) ([]Block, map[string]string, error) {
	idMap := make(map[string]string, len(subtree))
	for _, b := range subtree {
		idMap[b.ID] = NewID()
	}
	newRootID, ok := idMap[rootID]
	if !ok {
		return nil, nil, fmt.Errorf("duplicating subtree rooted at %s: %w", rootID, ErrBlockNotFound)
	}

	duplicated := make([]Block, 0, len(subtree))
	for _, b := range subtree {
		clone := b.Clone()
		clone.ID = idMap[b.ID]
		// The new root keeps its original parent so the copy lands beside
		// the source in the hierarchy.
		if clone.ID != newRootID && clone.ParentID != "" {
			if mapped, inTree := idMap[clone.ParentID]; inTree {
				clone.ParentID = mapped
			}
		}
		if mapped, inTree := idMap[clone.RootID]; inTree {
			clone.RootID = mapped
		}

		switch clone.Type {
		case TypeView:
			view, err := NewBoardViewFromBlock(clone)
			if err != nil {
				return nil, nil, err
			}
			for i, cardID := range view.CardOrder {
				if mapped, inTree := idMap[cardID]; inTree {
					view.CardOrder[i] = mapped
				}
			}
			if err := view.Pack(); err != nil {
				return nil, nil, err
			}
			clone = view.Block
		case TypeCard:
			card, err := NewCardFromBlock(clone)
			if err != nil {
				return nil, nil, err
			}
			for i, contentID := range card.ContentOrder {
				if mapped, inTree := idMap[contentID]; inTree {
					card.ContentOrder[i] = mapped
				}
			}
			if err := card.Pack(); err != nil {
				return nil, nil, err
			}
			clone = card.Block
		}

		duplicated = append(duplicated, clone)
	}
	return duplicated, idMap, nil
}
