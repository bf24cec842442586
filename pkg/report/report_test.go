package report

import (
	"bytes"
	"testing"
	"time"
)

func sampleReport() *Report {
	return &Report{
		ReportID: "MyIED/Protection/MMXU1$RP$urcb01",
		Reason:   ReasonDataChange,
		Data: map[string]any{
			"Protection/MMXU1.PhV.phsA.cVal.mag.f": 225.5,
			"Protection/MMXU1.PhV.phsB.cVal.mag.f": 219.5,
		},
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}
}

func TestEncodeDecodeReport(t *testing.T) {
	original := sampleReport()

	encoded, err := EncodeReport(original)
	if err != nil {
		t.Fatalf("EncodeReport failed: %v", err)
	}

	decoded, err := DecodeReport(encoded)
	if err != nil {
		t.Fatalf("DecodeReport failed: %v", err)
	}

	if decoded.ReportID != original.ReportID {
		t.Errorf("ReportID = %q, want %q", decoded.ReportID, original.ReportID)
	}
	if decoded.Reason != ReasonDataChange {
		t.Errorf("Reason = %v, want data-change", decoded.Reason)
	}
	if len(decoded.Data) != 2 {
		t.Fatalf("Data has %d entries, want 2", len(decoded.Data))
	}
	if v := decoded.Data["Protection/MMXU1.PhV.phsA.cVal.mag.f"]; v != 225.5 {
		t.Errorf("phsA = %v, want 225.5", v)
	}
	if !decoded.Timestamp.Equal(original.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, original.Timestamp)
	}
}

func TestDeterministicEncoding(t *testing.T) {
	first, err := EncodeReport(sampleReport())
	if err != nil {
		t.Fatalf("EncodeReport failed: %v", err)
	}
	second, err := EncodeReport(sampleReport())
	if err != nil {
		t.Fatalf("EncodeReport failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical reports encoded to different bytes")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Report)
	}{
		{"EmptyReportID", func(r *Report) { r.ReportID = "" }},
		{"UnknownReason", func(r *Report) { r.Reason = 99 }},
		{"EmptyData", func(r *Report) { r.Data = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleReport()
			tt.mutate(r)
			if err := r.Validate(); err == nil {
				t.Error("Validate accepted an invalid report")
			}
			if _, err := EncodeReport(r); err == nil {
				t.Error("EncodeReport accepted an invalid report")
			}
		})
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	t.Run("Garbage", func(t *testing.T) {
		if _, err := DecodeReport([]byte{0xff, 0x00, 0x13}); err == nil {
			t.Error("DecodeReport accepted garbage bytes")
		}
	})

	t.Run("ValidCBORInvalidReport", func(t *testing.T) {
		encoded, err := Marshal(&Report{ReportID: "", Reason: ReasonDataChange})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if _, err := DecodeReport(encoded); err == nil {
			t.Error("DecodeReport accepted a report with no ID")
		}
	})
}

func TestReasonString(t *testing.T) {
	if got := ReasonDataChange.String(); got != "data-change" {
		t.Errorf("String() = %q, want data-change", got)
	}
	if got := Reason(42).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestStreamEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		if err := enc.Encode(sampleReport()); err != nil {
			t.Fatalf("Encode %d failed: %v", i, err)
		}
	}

	dec := NewDecoder(&buf)
	count := 0
	for {
		var r Report
		if err := dec.Decode(&r); err != nil {
			break
		}
		count++
	}
	if count != 3 {
		t.Errorf("decoded %d reports from stream, want 3", count)
	}
}
