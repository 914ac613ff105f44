package ldap

import (
	"bytes"
	"testing"
)

// Byte-exact walkthroughs matching documented wire traces: AbandonRequest,
// BindRequest with a control, DeleteResponse with a referral, and a
// from-scratch length computation for a small BindRequest.

func TestScenario_AbandonRequestWireBytes(t *testing.T) {
	req := &AbandonRequest{MessageID: 2}
	opData, err := req.Encode()
	if err != nil {
		t.Fatalf("AbandonRequest.Encode() error = %v", err)
	}

	msg := &LDAPMessage{
		MessageID: 3,
		Operation: &RawOperation{Tag: ApplicationAbandonRequest, Data: opData},
	}
	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("LDAPMessage.Encode() error = %v", err)
	}

	// SEQUENCE { INTEGER 3, [APPLICATION 16] INTEGER 2 }
	want := []byte{
		0x30, 0x06, // SEQUENCE, length 6
		0x02, 0x01, 0x03, // messageID = 3
		0x50, 0x01, 0x02, // [APPLICATION 16] PRIMITIVE, length 1, value 2
	}
	if !bytes.Equal(encoded, want) {
		t.Errorf("AbandonRequest message = % X, want % X", encoded, want)
	}

	parsed, err := ParseLDAPMessage(encoded)
	if err != nil {
		t.Fatalf("ParseLDAPMessage() error = %v", err)
	}
	if parsed.MessageID != 3 {
		t.Errorf("MessageID = %d, want 3", parsed.MessageID)
	}
	abandon, err := ParseAbandonRequest(parsed.Operation.Data)
	if err != nil {
		t.Fatalf("ParseAbandonRequest() error = %v", err)
	}
	if abandon.MessageID != 2 {
		t.Errorf("abandoned MessageID = %d, want 2", abandon.MessageID)
	}
}

func TestScenario_BindRequestWithControlRoundTrip(t *testing.T) {
	bind := &BindRequest{
		Version:        3,
		Name:           "uid=akarasulu,dc=example,dc=com",
		AuthMethod:     AuthMethodSimple,
		SimplePassword: []byte("password"),
	}
	opData, err := bind.Encode()
	if err != nil {
		t.Fatalf("BindRequest.Encode() error = %v", err)
	}

	msg := &LDAPMessage{
		MessageID: 1,
		Operation: &RawOperation{Tag: ApplicationBindRequest, Data: opData},
		Controls: []Control{
			{OID: "2.16.840.1.113730.3.4.2"},
		},
	}
	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("LDAPMessage.Encode() error = %v", err)
	}

	parsed, err := ParseLDAPMessage(encoded)
	if err != nil {
		t.Fatalf("ParseLDAPMessage() error = %v", err)
	}
	if parsed.MessageID != 1 {
		t.Errorf("MessageID = %d, want 1", parsed.MessageID)
	}
	if len(parsed.Controls) != 1 {
		t.Fatalf("len(Controls) = %d, want 1", len(parsed.Controls))
	}
	if parsed.Controls[0].OID != "2.16.840.1.113730.3.4.2" {
		t.Errorf("control OID = %q, want %q", parsed.Controls[0].OID, "2.16.840.1.113730.3.4.2")
	}
	if parsed.Controls[0].Criticality {
		t.Error("control Criticality = true, want false (DEFAULT FALSE, not sent)")
	}
	if len(parsed.Controls[0].Value) != 0 {
		t.Errorf("control Value = % X, want empty", parsed.Controls[0].Value)
	}

	req, err := ParseBindRequest(parsed.Operation.Data)
	if err != nil {
		t.Fatalf("ParseBindRequest() error = %v", err)
	}
	if req.Name != "uid=akarasulu,dc=example,dc=com" {
		t.Errorf("Name = %q, want %q", req.Name, "uid=akarasulu,dc=example,dc=com")
	}
	if !bytes.Equal(req.SimplePassword, []byte("password")) {
		t.Errorf("SimplePassword = %q, want %q", req.SimplePassword, "password")
	}
}

func TestScenario_DeleteResponseWithReferralRoundTrip(t *testing.T) {
	resp := &DeleteResponse{LDAPResult: LDAPResult{
		ResultCode: ResultReferral,
		Referral:   []string{"ldap:///"},
	}}
	opTLV, err := resp.Encode()
	if err != nil {
		t.Fatalf("DeleteResponse.Encode() error = %v", err)
	}
	opData := extractOperationData(opTLV)

	msg := &LDAPMessage{
		MessageID: 1,
		Operation: &RawOperation{Tag: ApplicationDelResponse, Data: opData},
	}
	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("LDAPMessage.Encode() error = %v", err)
	}

	parsed, err := ParseLDAPMessage(encoded)
	if err != nil {
		t.Fatalf("ParseLDAPMessage() error = %v", err)
	}
	del, err := ParseDeleteResponse(parsed.Operation.Data)
	if err != nil {
		t.Fatalf("ParseDeleteResponse() error = %v", err)
	}
	if del.ResultCode != ResultReferral {
		t.Errorf("ResultCode = %d, want %d", del.ResultCode, ResultReferral)
	}
	if del.MatchedDN != "" || del.DiagnosticMessage != "" {
		t.Errorf("MatchedDN/DiagnosticMessage = %q/%q, want empty/empty", del.MatchedDN, del.DiagnosticMessage)
	}
	if len(del.Referral) != 1 || del.Referral[0] != "ldap:///" {
		t.Errorf("Referral = %v, want [\"ldap:///\"]", del.Referral)
	}
}

func TestScenario_BindRequestLengthPrecompute(t *testing.T) {
	bind := &BindRequest{
		Version:        3,
		Name:           "cn=admin",
		AuthMethod:     AuthMethodSimple,
		SimplePassword: []byte("password"), // 8 bytes
	}
	opData, err := bind.Encode()
	if err != nil {
		t.Fatalf("BindRequest.Encode() error = %v", err)
	}
	// version: 1 (tag) + 1 (length) + 1 (content) = 3
	// name "cn=admin": 1 + 1 + 8 = 10
	// simple auth [0] OCTET STRING "password": 1 + 1 + 8 = 10
	// total = 3 + 10 + 10 = 23
	if len(opData) != 23 {
		t.Errorf("len(BindRequest body) = %d, want 23", len(opData))
	}

	msg := &LDAPMessage{
		MessageID: 1,
		Operation: &RawOperation{Tag: ApplicationBindRequest, Data: opData},
	}
	encoded, err := msg.Encode()
	if err != nil {
		t.Fatalf("LDAPMessage.Encode() error = %v", err)
	}
	// [APPLICATION 0] wraps opData: 1 (tag) + 1 (length) + 23 (content) = 25
	// messageID INTEGER 1: 1 + 1 + 1 = 3
	// outer SEQUENCE: 1 (tag) + 1 (length) + 3 + 25 = 30
	if len(encoded) != 30 {
		t.Errorf("len(LDAPMessage) = %d, want 30", len(encoded))
	}
}
