package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/goalbot/internal/domain"
)

// Console implementa ports.Notifier escribiendo a stdout.
type Console struct {
	out io.Writer
}

// NewConsole crea un notificador de consola.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// Notify imprime el evento con timestamp. Nunca falla.
func (c *Console) Notify(_ context.Context, subject, body string) error {
	fmt.Fprintf(c.out, "[%s] %s — %s\n", time.Now().Format("15:04:05"), subject, body)
	return nil
}

// PrintPositions imprime el journal de posiciones como tabla.
func (c *Console) PrintPositions(records []domain.PositionRecord) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "no positions recorded")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Opened", "Match", "Market", "Entry", "Stake", "Outcome", "Exit", "Lay")

	for _, r := range records {
		exit := "-"
		if r.ExitReason != "" {
			exit = fmt.Sprintf("%s @%d'", r.ExitReason, r.ExitMinute)
		}
		lay := "-"
		if r.LayPrice > 0 {
			lay = fmt.Sprintf("%.2f", r.LayPrice)
		}
		table.Append(
			r.OpenedAt.Format("01-02 15:04"),
			truncate(fmt.Sprintf("%s v %s", r.HomeTeam, r.AwayTeam), 32),
			r.Market.MarketID,
			fmt.Sprintf("%.2f", r.EntryPrice),
			fmt.Sprintf("%.2f", r.Requested),
			string(r.Outcome),
			exit,
			lay,
		)
	}
	table.Render()
}

// truncate corta s a maxLen caracteres con elipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
