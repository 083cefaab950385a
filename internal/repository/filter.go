package repository

import (
	"github.com/doug-martin/goqu/v9"
)

// Filter accumulates equality conditions for list queries. Zero value is
// usable and matches everything.
type Filter struct {
	conditions goqu.Ex
}

func NewFilter() *Filter {
	return &Filter{conditions: goqu.Ex{}}
}

func (f *Filter) Equals(column string, value interface{}) *Filter {
	f.conditions[column] = value
	return f
}

func (f *Filter) Conditions() goqu.Ex {
	if f.conditions == nil {
		return goqu.Ex{}
	}
	return f.conditions
}
