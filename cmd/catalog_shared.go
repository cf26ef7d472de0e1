/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/samber/lo"

	"github.com/eslkits/drillbox/internal/entity"
)

// Catalog backup document. Only teaching content travels through
// import/export; per-user progress stays in the database.

type catalogDocument struct {
	Lessons    []catalogLesson   `json:"lessons,omitempty"`
	Passages   []catalogPassage  `json:"passages,omitempty"`
	Categories []catalogCategory `json:"categories,omitempty"`
}

type catalogLesson struct {
	Title       string          `json:"title"`
	Stage       int32           `json:"stage,omitempty"`
	Description string          `json:"description,omitempty"`
	Position    int32           `json:"position,omitempty"`
	Items       []catalogQAItem `json:"items,omitempty"`
}

type catalogQAItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	AudioURL string `json:"audioUrl,omitempty"`
	Position int32  `json:"position,omitempty"`
}

type catalogPassage struct {
	Title      string            `json:"title"`
	Level      int32             `json:"level,omitempty"`
	AudioURL   string            `json:"audioUrl,omitempty"`
	Transcript string            `json:"transcript,omitempty"`
	Questions  []catalogQuestion `json:"questions,omitempty"`
}

type catalogQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int32    `json:"answerIndex"`
	Position    int32    `json:"position,omitempty"`
}

type catalogCategory struct {
	Name        string             `json:"name"`
	Kind        string             `json:"kind"`
	Description string             `json:"description,omitempty"`
	Items       []catalogSoundItem `json:"items,omitempty"`
}

type catalogSoundItem struct {
	Written  string `json:"written"`
	Spoken   string `json:"spoken"`
	AudioURL string `json:"audioUrl,omitempty"`
	Position int32  `json:"position,omitempty"`
}

func (l *catalogLesson) toEntity() *entity.Lesson {
	return &entity.Lesson{
		Title:       l.Title,
		Stage:       l.Stage,
		Description: l.Description,
		Position:    l.Position,
		Items: lo.Map(l.Items, func(item catalogQAItem, _ int) entity.QAItem {
			return entity.QAItem{
				Question: item.Question,
				Answer:   item.Answer,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
	}
}

func lessonToCatalog(lesson entity.Lesson) catalogLesson {
	return catalogLesson{
		Title:       lesson.Title,
		Stage:       lesson.Stage,
		Description: lesson.Description,
		Position:    lesson.Position,
		Items: lo.Map(lesson.Items, func(item entity.QAItem, _ int) catalogQAItem {
			return catalogQAItem{
				Question: item.Question,
				Answer:   item.Answer,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
	}
}

func (p *catalogPassage) toEntity() *entity.Passage {
	return &entity.Passage{
		Title:      p.Title,
		Level:      p.Level,
		AudioURL:   p.AudioURL,
		Transcript: p.Transcript,
		Questions: lo.Map(p.Questions, func(q catalogQuestion, _ int) entity.ListeningQuestion {
			return entity.ListeningQuestion{
				Prompt:      q.Prompt,
				Options:     q.Options,
				AnswerIndex: q.AnswerIndex,
				Position:    q.Position,
			}
		}),
	}
}

func passageToCatalog(passage entity.Passage) catalogPassage {
	return catalogPassage{
		Title:      passage.Title,
		Level:      passage.Level,
		AudioURL:   passage.AudioURL,
		Transcript: passage.Transcript,
		Questions: lo.Map(passage.Questions, func(q entity.ListeningQuestion, _ int) catalogQuestion {
			return catalogQuestion{
				Prompt:      q.Prompt,
				Options:     q.Options,
				AnswerIndex: q.AnswerIndex,
				Position:    q.Position,
			}
		}),
	}
}

func (c *catalogCategory) toEntity() *entity.SoundChangeCategory {
	return &entity.SoundChangeCategory{
		Name:        c.Name,
		Kind:        entity.ParseSoundChangeKind(c.Kind),
		Description: c.Description,
		Items: lo.Map(c.Items, func(item catalogSoundItem, _ int) entity.SoundChangeItem {
			return entity.SoundChangeItem{
				Written:  item.Written,
				Spoken:   item.Spoken,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
	}
}

func categoryToCatalog(category entity.SoundChangeCategory) catalogCategory {
	return catalogCategory{
		Name:        category.Name,
		Kind:        string(category.Kind),
		Description: category.Description,
		Items: lo.Map(category.Items, func(item entity.SoundChangeItem, _ int) catalogSoundItem {
			return catalogSoundItem{
				Written:  item.Written,
				Spoken:   item.Spoken,
				AudioURL: item.AudioURL,
				Position: item.Position,
			}
		}),
	}
}
