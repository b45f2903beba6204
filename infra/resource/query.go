package resource

// Operator names a predicate comparison.
type Operator string

const (
	OpEqualTo  Operator = "EqualTo"
	OpContains Operator = "Contains" // case-insensitive substring
)

// Cond is a single field predicate.
type Cond struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value any      `json:"value"`
}

// GroupOp combines conditions or sub-groups.
type GroupOp string

const (
	GroupAnd GroupOp = "AND"
	GroupOr  GroupOp = "OR"
)

// Group is a node in the predicate tree.
type Group struct {
	Op     GroupOp `json:"op"`
	Conds  []Cond  `json:"conds,omitempty"`
	Groups []Group `json:"groups,omitempty"`
}

// Sort orders results by a field.
type Sort struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc"`
}

// Query is a normalized fetch request: predicate tree, sort keys and a
// pagination window. A zero Query matches everything.
type Query struct {
	Where  *Group `json:"where,omitempty"`
	Sort   []Sort `json:"sort,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Eq builds an equality condition.
func Eq(field string, value any) Cond {
	return Cond{Field: field, Op: OpEqualTo, Value: value}
}

// Contains builds a case-insensitive substring condition.
func Contains(field string, value string) Cond {
	return Cond{Field: field, Op: OpContains, Value: value}
}

// And groups conditions conjunctively.
func And(conds ...Cond) *Group {
	return &Group{Op: GroupAnd, Conds: conds}
}

// Or groups conditions disjunctively.
func Or(conds ...Cond) *Group {
	return &Group{Op: GroupOr, Conds: conds}
}

// AnyOf groups sub-groups disjunctively.
func AnyOf(groups ...Group) *Group {
	return &Group{Op: GroupOr, Groups: groups}
}
