package blocks

import (
	"encoding/json"
	"fmt"
)

// FilterCondition is the comparison a filter clause applies.
type FilterCondition string

const (
	ConditionIncludes    FilterCondition = "includes"
	ConditionNotIncludes FilterCondition = "notIncludes"
	ConditionIsEmpty     FilterCondition = "isEmpty"
	ConditionIsNotEmpty  FilterCondition = "isNotEmpty"
)

// FilterOperation combines the children of a filter group.
type FilterOperation string

const (
	OperationAnd FilterOperation = "and"
	OperationOr  FilterOperation = "or"
)

// FilterClause is a leaf predicate over one card property.
type FilterClause struct {
	PropertyID string          `json:"propertyId"`
	Condition  FilterCondition `json:"condition"`
	Values     []string        `json:"values"`
}

// FilterGroup combines clauses and nested groups into a boolean tree. The
// shipped views only author one level, but nesting is honored.
type FilterGroup struct {
	Operation FilterOperation `json:"operation"`
	Filters   []FilterItem    `json:"filters"`
}

// FilterItem holds either a clause or a nested group. On the wire it is a
// plain object; the presence of an "operation" key marks a group.
type FilterItem struct {
	Clause *FilterClause
	Group  *FilterGroup
}

// MarshalJSON writes the clause or group directly, without a wrapper object.
func (f FilterItem) MarshalJSON() ([]byte, error) {
	if f.Group != nil {
		return json.Marshal(f.Group)
	}
	if f.Clause != nil {
		return json.Marshal(f.Clause)
	}
	return nil, fmt.Errorf("empty filter item")
}

// UnmarshalJSON dispatches on the presence of an "operation" key.
func (f *FilterItem) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if _, isGroup := probe["operation"]; isGroup {
		group := FilterGroup{}
		if err := json.Unmarshal(data, &group); err != nil {
			return err
		}
		f.Group = &group
		f.Clause = nil
		return nil
	}
	clause := FilterClause{}
	if err := json.Unmarshal(data, &clause); err != nil {
		return err
	}
	f.Clause = &clause
	f.Group = nil
	return nil
}

// IsClauseMet evaluates a clause against a card's property values. A clause
// with no values is vacuously true for includes and notIncludes.
func IsClauseMet(clause FilterClause, card *Card) bool {
	value := card.Properties[clause.PropertyID]
	switch clause.Condition {
	case ConditionIncludes:
		if len(clause.Values) < 1 {
			return true
		}
		for _, candidate := range clause.Values {
			if valueEquals(value, candidate) {
				return true
			}
		}
		return false
	case ConditionNotIncludes:
		if len(clause.Values) < 1 {
			return true
		}
		for _, candidate := range clause.Values {
			if valueEquals(value, candidate) {
				return false
			}
		}
		return true
	case ConditionIsEmpty:
		return isEmptyValue(value)
	case ConditionIsNotEmpty:
		return !isEmptyValue(value)
	default:
		return true
	}
}

// IsGroupMet evaluates a filter group against a card. An empty group is
// vacuously true.
func IsGroupMet(group FilterGroup, card *Card) bool {
	if len(group.Filters) == 0 {
		return true
	}
	if group.Operation == OperationOr {
		for _, item := range group.Filters {
			if isItemMet(item, card) {
				return true
			}
		}
		return false
	}
	for _, item := range group.Filters {
		if !isItemMet(item, card) {
			return false
		}
	}
	return true
}

func isItemMet(item FilterItem, card *Card) bool {
	if item.Group != nil {
		return IsGroupMet(*item.Group, card)
	}
	if item.Clause != nil {
		return IsClauseMet(*item.Clause, card)
	}
	return true
}

// PropsSatisfyingClause synthesizes a property value that would satisfy the
// clause, used to pre-fill cards created inside a filtered view. ok is false
// when no concrete value is needed to satisfy it.
func PropsSatisfyingClause(clause FilterClause, templates []PropertyTemplate) (string, bool) {
	switch clause.Condition {
	case ConditionIncludes:
		if len(clause.Values) < 1 {
			return "", false
		}
		return clause.Values[0], true
	case ConditionIsNotEmpty:
		template := findTemplate(templates, clause.PropertyID)
		if template != nil && template.Type == PropTypeSelect && len(template.Options) > 0 {
			return template.Options[0].ID, true
		}
		return "", false
	default:
		// notIncludes and isEmpty are satisfied by an unset property.
		return "", false
	}
}

// PropsSatisfyingGroup synthesizes a property map satisfying the group. An
// "and" group composes all children; an "or" group uses only its first child,
// matching the shipped behavior.
func PropsSatisfyingGroup(group FilterGroup, templates []PropertyTemplate) map[string]any {
	result := map[string]any{}
	if len(group.Filters) == 0 {
		return result
	}
	items := group.Filters
	if group.Operation == OperationOr {
		items = items[:1]
	}
	for _, item := range items {
		if item.Group != nil {
			for id, value := range PropsSatisfyingGroup(*item.Group, templates) {
				result[id] = value
			}
			continue
		}
		if item.Clause != nil {
			if value, ok := PropsSatisfyingClause(*item.Clause, templates); ok {
				result[item.Clause.PropertyID] = value
			}
		}
	}
	return result
}

func findTemplate(templates []PropertyTemplate, id string) *PropertyTemplate {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i]
		}
	}
	return nil
}
