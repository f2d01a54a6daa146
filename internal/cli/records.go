package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/models"
	"github.com/dmitrijs2005/visadesk/internal/records"
)

func (a *App) Docs(ctx context.Context) error {
	docs, err := a.store.ListDocuments(ctx, a.user.ID)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents yet")
		return nil
	}
	for _, d := range docs {
		fmt.Fprintf(a.out, "%s  %s [%s] %d bytes, %s\n", d.ID, d.Name, d.Category, d.Size, d.UploadDate.Format("2006-01-02"))
	}
	return nil
}

// AddDoc records the metadata of a document the user has at hand.
func (a *App) AddDoc(ctx context.Context) error {
	var in records.DocumentInput
	var err error
	if in.Name, err = getSimpleText(a.reader, "Document name", a.out); err != nil {
		return err
	}
	if in.Type, err = getSimpleText(a.reader, "Content type", a.out); err != nil {
		return err
	}
	if in.Category, err = getSimpleText(a.reader, "Category", a.out); err != nil {
		return err
	}
	size, err := getSimpleText(a.reader, "Size in bytes", a.out)
	if err != nil {
		return err
	}
	if size != "" {
		if in.Size, err = strconv.ParseInt(size, 10, 64); err != nil {
			return common.Validation("size must be a number")
		}
	}

	doc, err := a.store.AddDocument(ctx, a.user.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Document %s added\n", doc.ID)
	return nil
}

// Chat stores a message from the user. Answers are produced elsewhere.
func (a *App) Chat(ctx context.Context) error {
	text, err := GetMultiline(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}
	if _, err := a.store.AppendChatMessage(ctx, a.user.ID, models.RoleUser, text); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Message saved")
	return nil
}

func (a *App) History(ctx context.Context) error {
	history, err := a.store.ChatHistory(ctx, a.user.ID)
	if err != nil {
		return err
	}
	for _, m := range history {
		fmt.Fprintf(a.out, "[%s] %s: %s\n", m.Timestamp.Format("2006-01-02 15:04"), m.Role, m.Content)
	}
	return nil
}

func (a *App) Civics(ctx context.Context) error {
	p, err := a.store.GetCivicsProgress(ctx, a.user.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "answered %d, correct %d, quizzes %d, best score %d, to review %d\n",
		p.TotalAnswered, p.CorrectAnswers, p.QuizzesTaken, p.BestScore, len(p.MissedQuestions))
	return nil
}
