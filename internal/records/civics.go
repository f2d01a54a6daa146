package records

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/models"
)

func (s *Store) GetCivicsProgress(ctx context.Context, userID string) (models.CivicsProgress, error) {
	p := models.NewCivicsProgress()
	err := s.view(ctx, "get civics progress", func(ctx context.Context, st kv.Store) error {
		return loadBlob(ctx, st, kv.NamespaceCivicsProgress, userID, &p)
	})
	if err != nil {
		return models.CivicsProgress{}, err
	}
	return fillCivics(p), nil
}

// RecordCivicsAnswer counts one answered question. A correct answer marks
// the question completed and clears it from the missed list; a wrong one
// adds it there.
func (s *Store) RecordCivicsAnswer(ctx context.Context, userID, questionID string, correct bool) (models.CivicsProgress, error) {
	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return models.CivicsProgress{}, common.Validation("question id is required")
	}
	return s.updateCivics(ctx, "record civics answer", userID, func(p *models.CivicsProgress) {
		p.TotalAnswered++
		if correct {
			p.CorrectAnswers++
			if !slices.Contains(p.CompletedQuestions, questionID) {
				p.CompletedQuestions = append(p.CompletedQuestions, questionID)
			}
			p.MissedQuestions = slices.DeleteFunc(p.MissedQuestions, func(q string) bool { return q == questionID })
			return
		}
		if !slices.Contains(p.MissedQuestions, questionID) {
			p.MissedQuestions = append(p.MissedQuestions, questionID)
		}
	})
}

// RecordQuizResult counts a finished quiz and keeps the best score.
func (s *Store) RecordQuizResult(ctx context.Context, userID string, score int) (models.CivicsProgress, error) {
	if score < 0 {
		return models.CivicsProgress{}, common.Validation("score must not be negative")
	}
	return s.updateCivics(ctx, "record quiz result", userID, func(p *models.CivicsProgress) {
		p.QuizzesTaken++
		p.BestScore = max(p.BestScore, score)
	})
}

func (s *Store) ResetCivicsProgress(ctx context.Context, userID string) error {
	return s.update(ctx, "reset civics progress", func(ctx context.Context, st kv.Store) error {
		return clearBlob(ctx, st, kv.NamespaceCivicsProgress, userID)
	})
}

func (s *Store) updateCivics(ctx context.Context, op, userID string, fn func(p *models.CivicsProgress)) (models.CivicsProgress, error) {
	p := models.NewCivicsProgress()
	err := s.update(ctx, op, func(ctx context.Context, st kv.Store) error {
		if err := loadBlob(ctx, st, kv.NamespaceCivicsProgress, userID, &p); err != nil {
			return err
		}
		p = fillCivics(p)
		fn(&p)
		now := s.timestamp()
		p.LastStudied = &now
		return saveBlob(ctx, st, kv.NamespaceCivicsProgress, userID, p)
	})
	if err != nil {
		return models.CivicsProgress{}, err
	}
	return p, nil
}

func fillCivics(p models.CivicsProgress) models.CivicsProgress {
	if p.MissedQuestions == nil {
		p.MissedQuestions = []string{}
	}
	if p.CompletedQuestions == nil {
		p.CompletedQuestions = []string{}
	}
	return p
}
