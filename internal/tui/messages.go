package tui

import (
	"github.com/matheuskafuri/cardex/internal/catalog"
)

type cardsLoadedMsg struct {
	result catalog.Result
}

type refreshDoneMsg struct {
	result catalog.Result
	err    error
}

type revealPublishedMsg struct {
	name string
}

type errMsg struct {
	err error
}
