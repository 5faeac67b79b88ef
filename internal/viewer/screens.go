package viewer

import (
	"fmt"
	"io"

	"github.com/vkarpenko/valentine/internal/viewer/api"
	"github.com/vkarpenko/valentine/internal/viewer/navstate"
)

// renderScreen prints the current screen's content. Every optional card field
// has a hardcoded fallback so a sparse card still renders completely.
func renderScreen(w io.Writer, card *api.CardView, screen navstate.Screen) {
	fmt.Fprintln(w)

	switch screen {
	case navstate.ScreenProposal:
		fmt.Fprintln(w, "💌", card.ProposalText)
		fmt.Fprintln(w, "(yes / no)")

	case navstate.ScreenTryAgain:
		fmt.Fprintln(w, "Wrong answer, try again!")
		fmt.Fprintln(w, "(retry)")

	case navstate.ScreenSuccessHub:
		fmt.Fprintf(w, "OMG you said yes! %s is overjoyed.\n", card.SenderName)
		fmt.Fprintln(w, "(photos / letter / flowers / relive)")

	case navstate.ScreenPhotos:
		fmt.Fprintln(w, "— Forever Together —")
		renderPhoto(w, card.Photo1URL, card.Photo1Caption)
		renderPhoto(w, card.Photo2URL, card.Photo2Caption)
		fmt.Fprintln(w, "(back)")

	case navstate.ScreenLetter:
		fmt.Fprintln(w, "— Words From My Heart —")
		fmt.Fprintln(w, card.LoveLetter)
		fmt.Fprintf(w, "P.S. %s\n", orElse(card.ShortNote, "Thinking of you."))
		fmt.Fprintf(w, "— %s\n", card.SenderName)
		fmt.Fprintln(w, "(back)")

	case navstate.ScreenFlowers:
		fmt.Fprintln(w, "— Flowers For My Love —")
		fmt.Fprintln(w, "🌸", card.FlowerMsg1)
		fmt.Fprintln(w, "🌹", card.FlowerMsg2)
		fmt.Fprintln(w, "🌷", card.FlowerMsg3)
		fmt.Fprintln(w, "🌻", card.FlowerMsg4)
		fmt.Fprintln(w, "(back)")
	}
}

func renderPhoto(w io.Writer, url, caption *string) {
	if url == nil {
		return
	}
	fmt.Fprintf(w, "%s — %s\n", orElse(caption, "Us"), *url)
}

func orElse(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
