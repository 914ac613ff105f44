package ldap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirwire/ldapcodec/internal/ber"
)

func TestDecoder_FeedsWholeMessageAtOnce(t *testing.T) {
	dec := NewDecoder(Limits{}, nil)

	data := createBindRequestMessage(1)
	msg, err := dec.Feed(data)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, 1, msg.MessageID)
	assert.Equal(t, ApplicationBindRequest, msg.Operation.Tag)
}

func TestDecoder_FeedsByteAtATime(t *testing.T) {
	dec := NewDecoder(Limits{}, nil)
	data := createSearchRequestMessage(7)

	var msg *LDAPMessage
	var err error
	for i := 0; i < len(data); i++ {
		msg, err = dec.Feed(data[i : i+1])
		require.NoError(t, err)
		if i < len(data)-1 {
			assert.Nil(t, msg, "should not frame a message before all bytes arrive")
		}
	}

	require.NotNil(t, msg)
	assert.Equal(t, 7, msg.MessageID)
}

func TestDecoder_HandlesTwoMessagesInOneBuffer(t *testing.T) {
	dec := NewDecoder(Limits{}, nil)

	first := createBindRequestMessage(1)
	second := createBindRequestMessage(2)
	combined := append(append([]byte{}, first...), second...)

	msg1, err := dec.Feed(combined)
	require.NoError(t, err)
	require.NotNil(t, msg1)
	assert.Equal(t, 1, msg1.MessageID)

	msg2, err := dec.Feed(nil)
	require.NoError(t, err)
	require.NotNil(t, msg2)
	assert.Equal(t, 2, msg2.MessageID)
}

func TestDecoder_PDUSizeLimitExceeded(t *testing.T) {
	dec := NewDecoder(Limits{MaxPDUSize: 8}, nil)

	data := createSearchRequestMessage(1)
	_, err := dec.Feed(data)
	require.Error(t, err)

	var limitErr *LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, LimitPDUSize, limitErr.Kind)
}

func TestDecoder_UnknownProtocolOpRejected(t *testing.T) {
	dec := NewDecoder(Limits{}, nil)

	encoder := ber.NewBEREncoder(32)
	err := encoder.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteInteger(1); err != nil {
			return err
		}
		return seq.WriteApplicationPrimitive(99, []byte("x"))
	})
	require.NoError(t, err)

	_, feedErr := dec.Feed(encoder.Bytes())
	require.Error(t, feedErr)

	var opErr *UnknownProtocolOpError
	require.ErrorAs(t, feedErr, &opErr)
	assert.Equal(t, 99, opErr.Tag)
}

func TestDecoder_MaxAttributesPerEntryEnforced(t *testing.T) {
	dec := NewDecoder(Limits{MaxAttributesPerEntry: 1}, nil)

	entry := &SearchResultEntry{
		ObjectName: "cn=test,dc=example,dc=com",
		Attributes: []PartialAttribute{
			{Type: "cn", Values: [][]byte{[]byte("test")}},
			{Type: "sn", Values: [][]byte{[]byte("test")}},
		},
	}
	encoded, err := entry.Encode()
	require.NoError(t, err)

	msgEncoder := ber.NewBEREncoder(256)
	err = msgEncoder.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteInteger(1); err != nil {
			return err
		}
		seq.WriteRaw(encoded)
		return nil
	})
	require.NoError(t, err)

	_, feedErr := dec.Feed(msgEncoder.Bytes())
	require.Error(t, feedErr)

	var limitErr *LimitExceededError
	require.ErrorAs(t, feedErr, &limitErr)
	assert.Equal(t, LimitAttributesPerEntry, limitErr.Kind)
}

func TestDecoder_MaxValuesPerAttributeEnforced(t *testing.T) {
	dec := NewDecoder(Limits{MaxValuesPerAttribute: 1}, nil)

	entry := &SearchResultEntry{
		ObjectName: "cn=test,dc=example,dc=com",
		Attributes: []PartialAttribute{
			{Type: "mail", Values: [][]byte{[]byte("a@example.com"), []byte("b@example.com")}},
		},
	}
	encoded, err := entry.Encode()
	require.NoError(t, err)

	msgEncoder := ber.NewBEREncoder(256)
	err = msgEncoder.WriteSequence(func(seq *ber.BEREncoder) error {
		if err := seq.WriteInteger(1); err != nil {
			return err
		}
		seq.WriteRaw(encoded)
		return nil
	})
	require.NoError(t, err)

	_, feedErr := dec.Feed(msgEncoder.Bytes())
	require.Error(t, feedErr)

	var limitErr *LimitExceededError
	require.ErrorAs(t, feedErr, &limitErr)
	assert.Equal(t, LimitValuesPerAttribute, limitErr.Kind)
}

func TestDecoder_NoBytesYieldsNilWithoutError(t *testing.T) {
	dec := NewDecoder(Limits{}, nil)
	msg, err := dec.Feed(nil)
	require.NoError(t, err)
	assert.Nil(t, msg)
}
