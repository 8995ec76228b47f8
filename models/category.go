package models

import "time"

type Category struct {
	Id          int64
	Name        string
	Description string
	ParentId    *int64
	CreatedAt   time.Time
	Children    []Category
}

type CreateCategoryInput struct {
	Name        string
	Description string
	ParentId    *int64
}

type UpdateCategoryInput struct {
	Name        *string
	Description *string
	ParentId    *int64
}

// BuildCategoryTree nests categories under their parent, keeping the input order.
// Categories whose parent is missing from the list are returned as roots.
func BuildCategoryTree(categories []Category) []Category {
	byParent := make(map[int64][]Category, len(categories))
	known := make(map[int64]bool, len(categories))
	for _, c := range categories {
		known[c.Id] = true
	}

	roots := make([]Category, 0)
	for _, c := range categories {
		if c.ParentId == nil || !known[*c.ParentId] {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentId] = append(byParent[*c.ParentId], c)
	}

	var attach func(c Category, depth int) Category
	attach = func(c Category, depth int) Category {
		children := byParent[c.Id]
		if len(children) == 0 || depth > len(categories) {
			c.Children = []Category{}
			return c
		}
		c.Children = make([]Category, 0, len(children))
		for _, child := range children {
			c.Children = append(c.Children, attach(child, depth+1))
		}
		return c
	}

	for i := range roots {
		roots[i] = attach(roots[i], 0)
	}
	return roots
}
