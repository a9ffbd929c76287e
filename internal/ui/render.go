package ui

import (
	"fmt"
	"io"
	"strings"

	"kwiz-client/internal/domain"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

func paint(code, s string) string {
	return code + s + ansiReset
}

// Greeting prints the dashboard header line.
func Greeting(out io.Writer, name string) {
	if name == "" {
		name = "Jogador"
	}
	fmt.Fprintf(out, "Olá, %s!\n", name)
}

// RenderQuizzes lists playable quizzes or the empty-state placeholder.
func RenderQuizzes(out io.Writer, quizzes []domain.Quiz) {
	if len(quizzes) == 0 {
		fmt.Fprintln(out, "Nenhum quiz encontrado.")
		return
	}
	fmt.Fprintln(out, "Meus Quizzes:")
	for _, quiz := range quizzes {
		line := fmt.Sprintf("  [%d] %s — %d questões", quiz.ID, quiz.Title, quiz.QuestionCount())
		if quiz.IsTimerEnabled {
			line += " (cronometrado)"
		}
		fmt.Fprintln(out, line)
		if quiz.Description != "" {
			fmt.Fprintf(out, "      %s\n", quiz.Description)
		}
	}
}

// RenderTurmas lists the user's classes or the empty-state placeholder.
func RenderTurmas(out io.Writer, turmas []domain.Turma) {
	if len(turmas) == 0 {
		fmt.Fprintln(out, "Nenhuma turma encontrada.")
		return
	}
	fmt.Fprintln(out, "Turmas:")
	for _, turma := range turmas {
		fmt.Fprintf(out, "  [%d] %s — código %s, %d membros\n", turma.ID, turma.Name, turma.Code, len(turma.Members))
	}
}

// RenderStats shows the aggregate statistics tab.
func RenderStats(out io.Writer, stats domain.Stats) {
	fmt.Fprintln(out, "Estatísticas:")
	fmt.Fprintf(out, "  Quizzes concluídos: %d\n", stats.TotalQuizzes)
	fmt.Fprintf(out, "  Pontuação média:    %.0f%%\n", stats.AverageScore)
	fmt.Fprintf(out, "  Conquistas:         %d\n", stats.TotalAchievements)
}

// RenderQuestion shows the question card with lettered options.
func RenderQuestion(out io.Writer, number int, question domain.Question, remaining, score int) {
	fmt.Fprintf(out, "\nQuestão %d — %s pontos: %d\n", number, countdownLabel(remaining), score)
	fmt.Fprintf(out, "%s\n\n", question.Text)
	for idx, option := range question.Options {
		fmt.Fprintf(out, "  %c. %s\n", optionLetter(idx), option.Text)
	}
	fmt.Fprintf(out, "\nSua resposta (A-%c, ou 'sair'): ", optionLetter(len(question.Options)-1))
}

// RenderCountdown reprints the remaining time on its own line.
func RenderCountdown(out io.Writer, remaining int) {
	fmt.Fprintf(out, "%s\n", countdownLabel(remaining))
}

func countdownLabel(remaining int) string {
	label := fmt.Sprintf("%ds", remaining)
	if remaining <= 10 {
		return paint(ansiRed, label)
	}
	return paint(ansiYellow, label)
}

// RenderResult highlights the correct option in green and a wrong
// selection in red, then states the outcome.
func RenderResult(out io.Writer, question domain.Question, selected int64, hasSelected, correct bool, awarded int) {
	fmt.Fprintln(out)
	for idx, option := range question.Options {
		line := fmt.Sprintf("  %c. %s", optionLetter(idx), option.Text)
		switch {
		case option.IsCorrect:
			line = paint(ansiGreen, line)
		case hasSelected && option.ID == selected:
			line = paint(ansiRed, line)
		}
		fmt.Fprintln(out, line)
	}
	switch {
	case !hasSelected:
		fmt.Fprintln(out, paint(ansiRed, "Tempo esgotado!"))
	case correct:
		fmt.Fprintf(out, "%s (+%d pontos)\n", paint(ansiGreen, "✓ Correto! Parabéns!"), awarded)
	default:
		fmt.Fprintln(out, paint(ansiRed, "✗ Resposta incorreta"))
	}
}

// RenderFinalScore closes out a completed play-through.
func RenderFinalScore(out io.Writer, score int) {
	fmt.Fprintf(out, "\nFim de jogo! Pontuação final: %d\n", score)
}

// OptionForLetter maps an answer like "b" onto the question's options.
func OptionForLetter(question domain.Question, answer string) (int64, bool) {
	answer = strings.ToUpper(strings.TrimSpace(answer))
	if len(answer) != 1 {
		return 0, false
	}
	idx := int(answer[0] - 'A')
	if idx < 0 || idx >= len(question.Options) {
		return 0, false
	}
	return question.Options[idx].ID, true
}

func optionLetter(idx int) byte {
	return byte('A' + idx)
}
