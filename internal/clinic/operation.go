package clinic

// Operation selects what a resource endpoint does with a request.
type Operation int

const (
	OpCreate Operation = iota + 1
	OpUpdate
	OpList
	OpDelete
)

func (o Operation) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpList:
		return "list"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// IsMutation reports whether the operation changes the remote collection.
func (o Operation) IsMutation() bool {
	return o == OpCreate || o == OpUpdate || o == OpDelete
}
