package output

import (
	"io"

	"github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

// QRConfig configures QR code rendering.
type QRConfig struct {
	Level      qr.Level
	QuietZone  int
	HalfBlocks bool
}

// DefaultQRConfig suits links scanned from a laptop screen with a phone.
func DefaultQRConfig() QRConfig {
	return QRConfig{
		Level:      qr.M,
		QuietZone:  1,
		HalfBlocks: true,
	}
}

// RenderQR draws data as a QR code when w is a terminal. It reports whether
// anything was drawn.
func RenderQR(w io.Writer, data string, cfg QRConfig) bool {
	if !IsTerminal(w) {
		return false
	}
	renderQR(w, data, cfg)
	return true
}

func renderQR(w io.Writer, data string, cfg QRConfig) {
	qrterminal.GenerateWithConfig(data, qrterminal.Config{
		Level:          cfg.Level,
		Writer:         w,
		QuietZone:      cfg.QuietZone,
		HalfBlocks:     cfg.HalfBlocks,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
	})
}
