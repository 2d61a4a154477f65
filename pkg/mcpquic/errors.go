package mcpquic

import (
	"errors"

	"github.com/quic-go/quic-go"
)

const (
	streamErrProtocol quic.StreamErrorCode = 0x02

	connErrNone     quic.ApplicationErrorCode = 0x00
	connErrALPN     quic.ApplicationErrorCode = 0x01
	connErrProtocol quic.ApplicationErrorCode = 0x03
)

var (
	ErrBadMagic     = errors.New("mcpquic: stream did not start with " + MagicBytes)
	ErrALPN         = errors.New("mcpquic: " + ALPNProtocol + " not negotiated")
	ErrNotConnected = errors.New("mcpquic: client not connected")
)
