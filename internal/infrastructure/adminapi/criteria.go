package adminapi

// Criteria is the declarative query descriptor understood by the Admin API
// search endpoints. It is built fresh per call and must not be mutated after
// being handed to a repository.
type Criteria struct {
	IDs          []string             `json:"ids,omitempty"`
	Page         int                  `json:"page,omitempty"`
	Limit        int                  `json:"limit,omitempty"`
	Term         string               `json:"term,omitempty"`
	Fields       []string             `json:"fields,omitempty"`
	Filter       []Filter             `json:"filter,omitempty"`
	Sort         []Sorting            `json:"sort,omitempty"`
	Associations map[string]*Criteria `json:"associations,omitempty"`
	Aggregations []Aggregation        `json:"aggregations,omitempty"`
}

// NewCriteria creates a criteria, optionally targeting an explicit id list
// instead of a general search.
func NewCriteria(ids ...string) *Criteria {
	return &Criteria{IDs: ids}
}

// AddFields appends field projections in the given order.
func (c *Criteria) AddFields(fields ...string) *Criteria {
	c.Fields = append(c.Fields, fields...)
	return c
}

// SetPage sets the 1-indexed result page.
func (c *Criteria) SetPage(page int) *Criteria {
	c.Page = page
	return c
}

// SetLimit sets the page size.
func (c *Criteria) SetLimit(limit int) *Criteria {
	c.Limit = limit
	return c
}

// SetTerm sets a free-text search term.
func (c *Criteria) SetTerm(term string) *Criteria {
	c.Term = term
	return c
}

// AddFilter appends filters; all top-level filters are AND-combined.
func (c *Criteria) AddFilter(filters ...Filter) *Criteria {
	c.Filter = append(c.Filter, filters...)
	return c
}

// AddSorting appends sort specifications.
func (c *Criteria) AddSorting(sortings ...Sorting) *Criteria {
	c.Sort = append(c.Sort, sortings...)
	return c
}

// AddAssociation marks an association for eager loading and returns its
// nested criteria for further shaping.
func (c *Criteria) AddAssociation(name string) *Criteria {
	if c.Associations == nil {
		c.Associations = make(map[string]*Criteria)
	}
	sub, ok := c.Associations[name]
	if !ok {
		sub = &Criteria{}
		c.Associations[name] = sub
	}
	return sub
}

// AddAggregation appends aggregation definitions.
func (c *Criteria) AddAggregation(aggs ...Aggregation) *Criteria {
	c.Aggregations = append(c.Aggregations, aggs...)
	return c
}

// Filter is a node of the filter tree: a leaf predicate or a negated group
// of sub-filters.
type Filter struct {
	Type     string   `json:"type"`
	Field    string   `json:"field,omitempty"`
	Value    any      `json:"value,omitempty"`
	Operator string   `json:"operator,omitempty"`
	Queries  []Filter `json:"queries,omitempty"`
}

// Equals matches records whose field equals value exactly.
func Equals(field string, value any) Filter {
	return Filter{Type: "equals", Field: field, Value: value}
}

// Contains matches records whose field contains the given substring.
func Contains(field string, value string) Filter {
	return Filter{Type: "contains", Field: field, Value: value}
}

// Not inverts the combination of its sub-filters; operator is "and" or "or".
func Not(operator string, queries []Filter) Filter {
	return Filter{Type: "not", Operator: operator, Queries: queries}
}

// Sorting orders results by a field; order is "ASC" or "DESC".
type Sorting struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Sort builds a sort specification.
func Sort(field string, order string) Sorting {
	return Sorting{Field: field, Order: order}
}

// Aggregation describes a backend-computed summary over a field, optionally
// a filtered wrapper scoping an inner aggregation by sub-filters.
type Aggregation struct {
	Type        string       `json:"type"`
	Name        string       `json:"name"`
	Field       string       `json:"field,omitempty"`
	Filter      []Filter     `json:"filter,omitempty"`
	Aggregation *Aggregation `json:"aggregation,omitempty"`
}

// Count counts matching values of a field.
func Count(name string, field string) Aggregation {
	return Aggregation{Type: "count", Name: name, Field: field}
}

// Max computes the maximum value of a field.
func Max(name string, field string) Aggregation {
	return Aggregation{Type: "max", Name: name, Field: field}
}

// Min computes the minimum value of a field.
func Min(name string, field string) Aggregation {
	return Aggregation{Type: "min", Name: name, Field: field}
}

// Stats computes min, max, avg and sum of a field.
func Stats(name string, field string) Aggregation {
	return Aggregation{Type: "stats", Name: name, Field: field}
}

// Terms buckets results by the distinct values of a field.
func Terms(name string, field string) Aggregation {
	return Aggregation{Type: "terms", Name: name, Field: field}
}

// Histogram buckets results over a date or numeric field.
func Histogram(name string, field string) Aggregation {
	return Aggregation{Type: "histogram", Name: name, Field: field}
}

// FilterAggregation scopes an inner aggregation by sub-filters.
func FilterAggregation(name string, filters []Filter, inner Aggregation) Aggregation {
	return Aggregation{Type: "filter", Name: name, Filter: filters, Aggregation: &inner}
}
