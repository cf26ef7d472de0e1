package repository

import (
	"time"

	"github.com/eslkits/drillbox/pkg/filterexpr"
)

// Filter and order schemas per resource. Every field a client may
// reference in `filter` or `order_by` is whitelisted here; anything
// else is rejected before it reaches SQL.

type listLessonBindings struct {
	TitlePrefix *string
	Stage       *int64
	Stages      []int64
}

var listLessonsSchema = filterexpr.Schema{
	Fields: map[string]filterexpr.FieldRule{
		"title": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TitlePrefix"},
		},
		"stage": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Stage",
				filterexpr.OpIN: "Stages",
			},
		},
	},
}

var lessonOrderSchema = filterexpr.OrderSchema{
	Default:  "position",
	Fallback: "id",
	Fields: map[string]string{
		"position":   "position",
		"title":      "title",
		"stage":      "stage",
		"created_at": "created_at",
		"id":         "id",
	},
}

type listWordBindings struct {
	TermPrefix  *string
	Language    *string
	Level       *int64
	LevelMin    *int64
	LevelMax    *int64
	ReviewAfter *time.Time
}

var listWordsSchema = filterexpr.Schema{
	Fields: map[string]filterexpr.FieldRule{
		"term": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TermPrefix"},
		},
		"language": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Language"},
		},
		"level": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "Level",
				filterexpr.OpGTE: "LevelMin",
				filterexpr.OpLTE: "LevelMax",
			},
		},
		"next_review_at": {
			Kind: filterexpr.KindTimestamp,
			Ops:  map[filterexpr.Op]string{filterexpr.OpGTE: "ReviewAfter"},
		},
	},
}

var wordOrderSchema = filterexpr.OrderSchema{
	Default:     "created_at",
	DefaultDesc: true,
	Fallback:    "id",
	Fields: map[string]string{
		"term":           "term_key",
		"level":          "level",
		"created_at":     "created_at",
		"next_review_at": "next_review_at",
		"id":             "id",
	},
}

type listPassageBindings struct {
	TitlePrefix *string
	Level       *int64
	LevelMin    *int64
	LevelMax    *int64
}

var listPassagesSchema = filterexpr.Schema{
	Fields: map[string]filterexpr.FieldRule{
		"title": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "TitlePrefix"},
		},
		"level": {
			Kind: filterexpr.KindNumber,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "Level",
				filterexpr.OpGTE: "LevelMin",
				filterexpr.OpLTE: "LevelMax",
			},
		},
	},
}

var passageOrderSchema = filterexpr.OrderSchema{
	Default:  "created_at",
	Fallback: "id",
	Fields: map[string]string{
		"title":      "title",
		"level":      "level",
		"created_at": "created_at",
		"id":         "id",
	},
}

type listCategoryBindings struct {
	NamePrefix *string
	Kind       *string
	Kinds      []string
}

var listCategoriesSchema = filterexpr.Schema{
	Fields: map[string]filterexpr.FieldRule{
		"name": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpSW: "NamePrefix"},
		},
		"kind": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Kind",
				filterexpr.OpIN: "Kinds",
			},
		},
	},
}

var categoryOrderSchema = filterexpr.OrderSchema{
	Default:  "created_at",
	Fallback: "id",
	Fields: map[string]string{
		"name":       "name",
		"kind":       "kind",
		"created_at": "created_at",
		"id":         "id",
	},
}
