package ldap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dirwire/ldapcodec/internal/ber"
)

// DefaultMaxPDUSize bounds a single LDAPMessage frame at 16 MiB, matching
// common LDAP server defaults for the maximum allowed request/response size.
const DefaultMaxPDUSize = 16 * 1024 * 1024

// Limits bounds the resources a single Decoder will commit to an
// in-flight message, protecting the embedding application from a peer
// that declares an enormous PDU or entry before the bytes backing it
// have actually arrived.
type Limits struct {
	// MaxPDUSize caps the total encoded size of one LDAPMessage, tag and
	// length included. Zero selects DefaultMaxPDUSize.
	MaxPDUSize int
	// MaxAttributesPerEntry caps PartialAttribute count in a
	// SearchResultEntry. Zero means unlimited.
	MaxAttributesPerEntry int
	// MaxValuesPerAttribute caps the value count of a single
	// PartialAttribute. Zero means unlimited.
	MaxValuesPerAttribute int
}

func (l Limits) maxPDUSize() int {
	if l.MaxPDUSize <= 0 {
		return DefaultMaxPDUSize
	}
	return l.MaxPDUSize
}

// LimitKind identifies which Limits field a LimitExceededError violated.
type LimitKind string

const (
	LimitPDUSize            LimitKind = "pdu_size"
	LimitAttributesPerEntry LimitKind = "attributes_per_entry"
	LimitValuesPerAttribute LimitKind = "values_per_attribute"
)

// LimitExceededError is returned when a peer's message exceeds a configured
// Limits bound.
type LimitExceededError struct {
	Kind  LimitKind
	Limit int
	Got   int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("ldap: %s limit exceeded: got %d, limit %d", e.Kind, e.Got, e.Limit)
}

// UnknownProtocolOpError is returned when an LDAPMessage's protocolOp tag
// does not correspond to any known operation.
type UnknownProtocolOpError struct {
	Tag int
}

func (e *UnknownProtocolOpError) Error() string {
	return fmt.Sprintf("ldap: unknown protocolOp tag %d", e.Tag)
}

// Decoder is a streaming, byte-oriented LDAPMessage framer. It accumulates
// bytes fed to it across however many reads a transport delivers them in,
// and hands back one fully-framed *LDAPMessage at a time.
//
// Decoder does not itself perform I/O: the caller owns the socket (or
// whatever byte source) and pushes bytes into Feed. This keeps the codec
// transport-agnostic per spec.md's non-goals.
type Decoder struct {
	limits Limits
	logger *zerolog.Logger
	buf    []byte
}

// NewDecoder creates a Decoder bounded by limits. logger may be nil, in
// which case no trace logging occurs.
func NewDecoder(limits Limits, logger *zerolog.Logger) *Decoder {
	return &Decoder{limits: limits, logger: logger}
}

func (d *Decoder) trace(msg string, fields map[string]interface{}) {
	if d.logger == nil {
		return
	}
	event := d.logger.Trace()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(msg)
}

// Feed appends newData to the Decoder's internal buffer and attempts to
// extract one complete LDAPMessage. It returns (nil, nil) when the buffer
// does not yet hold a full message (more bytes are needed) and (msg, nil)
// after successfully framing and validating one message, consuming its
// bytes from the internal buffer. Any other error return means the
// decoder's buffered state is no longer trustworthy and it must not be fed
// further.
func (d *Decoder) Feed(newData []byte) (*LDAPMessage, error) {
	if len(newData) > 0 {
		d.buf = append(d.buf, newData...)
	}

	if len(d.buf) == 0 {
		return nil, nil
	}

	peek := ber.NewBERDecoder(d.buf)
	_, _, tagNum, err := peek.ReadTag()
	if err != nil {
		if err == ber.ErrUnexpectedEOF {
			return nil, nil
		}
		return nil, NewParseError(0, "failed to read LDAPMessage tag", err)
	}
	if tagNum != ber.TagSequence {
		return nil, NewParseError(0, "expected SEQUENCE for LDAPMessage", ber.ErrTagMismatch)
	}

	length, err := peek.ReadLength()
	if err != nil {
		if err == ber.ErrUnexpectedEOF {
			return nil, nil
		}
		return nil, NewParseError(0, "failed to read LDAPMessage length", err)
	}

	headerLen := peek.Offset()
	frameLen := headerLen + length

	if max := d.limits.maxPDUSize(); frameLen > max {
		return nil, &LimitExceededError{Kind: LimitPDUSize, Limit: max, Got: frameLen}
	}

	if len(d.buf) < frameLen {
		// Not enough bytes buffered yet for the full frame.
		return nil, nil
	}

	frame := d.buf[:frameLen]
	d.trace("framed LDAPMessage", map[string]interface{}{"bytes": frameLen})

	msg, err := ParseLDAPMessage(frame)
	if err != nil {
		return nil, err
	}

	if err := d.validateOperation(msg); err != nil {
		return nil, err
	}

	// Consume the framed bytes, retaining any trailing data already
	// buffered for the next message.
	remaining := len(d.buf) - frameLen
	if remaining > 0 {
		copy(d.buf, d.buf[frameLen:])
	}
	d.buf = d.buf[:remaining]

	return msg, nil
}

// validateOperation rejects unknown protocolOp tags and, for
// SearchResultEntry, enforces MaxAttributesPerEntry/MaxValuesPerAttribute.
func (d *Decoder) validateOperation(msg *LDAPMessage) error {
	if msg.Operation == nil {
		return nil
	}

	switch msg.Operation.Tag {
	case ApplicationBindRequest, ApplicationBindResponse, ApplicationUnbindRequest,
		ApplicationSearchRequest, ApplicationSearchResultEntry, ApplicationSearchResultDone,
		ApplicationModifyRequest, ApplicationModifyResponse, ApplicationAddRequest, ApplicationAddResponse,
		ApplicationDelRequest, ApplicationDelResponse, ApplicationModifyDNRequest, ApplicationModifyDNResponse,
		ApplicationCompareRequest, ApplicationCompareResponse, ApplicationAbandonRequest,
		ApplicationSearchResultReference, ApplicationExtendedRequest, ApplicationExtendedResponse,
		ApplicationIntermediateResponse:
		// known
	default:
		return &UnknownProtocolOpError{Tag: msg.Operation.Tag}
	}

	if msg.Operation.Tag != ApplicationSearchResultEntry {
		return nil
	}
	if d.limits.MaxAttributesPerEntry <= 0 && d.limits.MaxValuesPerAttribute <= 0 {
		return nil
	}

	entry, err := ParseSearchResultEntry(msg.Operation.Data)
	if err != nil {
		return err
	}

	if d.limits.MaxAttributesPerEntry > 0 && len(entry.Attributes) > d.limits.MaxAttributesPerEntry {
		return &LimitExceededError{Kind: LimitAttributesPerEntry, Limit: d.limits.MaxAttributesPerEntry, Got: len(entry.Attributes)}
	}
	if d.limits.MaxValuesPerAttribute > 0 {
		for _, attr := range entry.Attributes {
			if len(attr.Values) > d.limits.MaxValuesPerAttribute {
				return &LimitExceededError{Kind: LimitValuesPerAttribute, Limit: d.limits.MaxValuesPerAttribute, Got: len(attr.Values)}
			}
		}
	}

	return nil
}
