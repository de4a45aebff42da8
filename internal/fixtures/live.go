package fixtures

import (
	"time"

	"github.com/medflow-ai/caseroom/internal/caseroom"
)

// ConnectDelay is how long the feed shows "connecting" before "connected".
const ConnectDelay = 600 * time.Millisecond

// LiveEvent is an alert bundle scheduled Delay after the feed starts.
type LiveEvent struct {
	Delay time.Duration
	Event caseroom.AlertEvent
}

func ptr[T any](v T) *T { return &v }

// LiveEvents returns the three scripted alerts in firing order.
func LiveEvents() []LiveEvent {
	return []LiveEvent{
		{Delay: 5 * time.Second, Event: imagingLive()},
		{Delay: 12 * time.Second, Event: icuLive()},
		{Delay: 20 * time.Second, Event: ecgLive()},
	}
}

func imagingLive() caseroom.AlertEvent {
	return caseroom.AlertEvent{
		Alert: caseroom.AlertFeedItem{
			ID: "alert-imaging-live", RoomID: "room-pt-004", PatientID: "pt-004",
			Domain: caseroom.DomainImaging, Title: "Imaging result available",
			Detail: "CTA 신규 병변 감지, Urgency HIGH", Time: "14:25",
			Severity: caseroom.RiskHigh, Change: "Lesion detected",
		},
		Message: caseroom.Message{
			ID: "msg-live-001", Sender: "MedFlow AI", Role: "Imaging", Time: "14:25",
			Type:    caseroom.MessageAlert,
			Content: "Imaging result available. Lesion detected, urgency HIGH.",
		},
		Timeline: caseroom.TimelineEvent{
			Time: "14:25", Label: "Imaging result available (Lesion detected)", Type: caseroom.TimelineAI,
		},
		InsightUpdate: &caseroom.InsightUpdate{
			Domain:      caseroom.DomainImaging,
			LastUpdated: "14:25",
			Standardized: []caseroom.Indicator{
				ind("Lesion Detected", "Yes"),
				ind("Volume", "13.1 ml"),
				ind("Progression", "Worsening"),
				ind("Urgency Flag", "HIGH"),
			},
			RawOutputs: []string{"Lesion segmentation mask (CTA)", "Volume delta +3.4 ml"},
			Evidence:   []string{"CTA snapshot 14:25", "PACS series 12-3400"},
			Confidence: ptr("0.92"),
			Quality:    ptr(caseroom.QualityGood),
		},
		SummaryUpdate: &caseroom.LlmSummary{
			LastUpdated: "14:25",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "HIGH (Imaging alert)"),
				ind("Main Findings", "CTA 신규 병변 감지"),
				ind("Recent Changes", "Urgency flag HIGH 유지"),
			},
			Narrative: "CTA 분석에서 신규 병변이 확인되어 urgency flag가 유지되었습니다. " +
				"해당 이벤트가 케이스 룸과 타임라인에 반영되었습니다.",
			Evidence: []string{"Imaging analysis update", "CTA snapshot 14:25"},
		},
	}
}

func icuLive() caseroom.AlertEvent {
	return caseroom.AlertEvent{
		Alert: caseroom.AlertFeedItem{
			ID: "alert-icu-live", RoomID: "room-pt-003", PatientID: "pt-003",
			Domain: caseroom.DomainICU, Title: "ICU risk score changed",
			Detail: "Risk 68 → 82, driver: MAP drop", Time: "14:28",
			Severity: caseroom.RiskHigh, Change: "Risk 68 → 82",
		},
		Message: caseroom.Message{
			ID: "msg-live-002", Sender: "MedFlow AI", Role: "Risk Monitor", Time: "14:28",
			Type:    caseroom.MessageAlert,
			Content: "ICU risk score changed: 68 → 82 (MAP drop).",
		},
		Timeline: caseroom.TimelineEvent{
			Time: "14:28", Label: "ICU risk update 68 → 82", Type: caseroom.TimelineAI,
		},
		InsightUpdate: &caseroom.InsightUpdate{
			Domain:      caseroom.DomainICU,
			LastUpdated: "14:28",
			Standardized: []caseroom.Indicator{
				ind("Risk Score", "82 / 100"),
				ind("Risk Level", "HIGH"),
				ind("Trend (6h)", "Rising"),
			},
			Drivers: []string{"MAP drop", "Lactate 상승", "SpO2 변동"},
			RawOutputs: []string{
				"Deterioration probability 0.82",
				"Feature contribution: MAP 0.27, Lactate 0.22, SpO2 0.16",
			},
			Evidence:   []string{"Vitals 48h", "Lab panel 24h"},
			Confidence: ptr("0.84"),
			Quality:    ptr(caseroom.QualityGood),
		},
		SummaryUpdate: &caseroom.LlmSummary{
			LastUpdated: "14:28",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "HIGH (ICU deterioration)"),
				ind("Main Findings", "MAP drop + lactate 상승"),
				ind("Recent Changes", "Risk 68 → 82"),
			},
			Narrative: "ICU 시계열 분석에서 위험도가 상승했습니다. " +
				"주요 드라이버는 MAP 하락과 lactate 상승이며, 변화가 타임라인에 기록되었습니다.",
			Evidence: []string{"ICU risk update", "Lab panel log"},
		},
	}
}

func ecgLive() caseroom.AlertEvent {
	return caseroom.AlertEvent{
		Alert: caseroom.AlertFeedItem{
			ID: "alert-ecg-live", RoomID: "room-pt-001", PatientID: "pt-001",
			Domain: caseroom.DomainECG, Title: "Arrhythmia probability increased",
			Detail: "Arrhythmia probability 0.87", Time: "14:32",
			Severity: caseroom.RiskHigh, Change: "Risk LOW → HIGH",
		},
		Message: caseroom.Message{
			ID: "msg-live-003", Sender: "MedFlow AI", Role: "ECG", Time: "14:32",
			Type:    caseroom.MessageAlert,
			Content: "Arrhythmia probability increased to 0.87.",
		},
		Timeline: caseroom.TimelineEvent{
			Time: "14:32", Label: "ECG arrhythmia risk increased", Type: caseroom.TimelineAI,
		},
		InsightUpdate: &caseroom.InsightUpdate{
			Domain:      caseroom.DomainECG,
			LastUpdated: "14:32",
			Standardized: []caseroom.Indicator{
				ind("Arrhythmia Risk", "HIGH"),
				ind("Rhythm Trend", "Worsening"),
				ind("Key Segments", "Lead II 14:10-14:20"),
			},
			RawOutputs: []string{"Arrhythmia probability 0.87", "Rhythm instability index 0.76"},
			Evidence:   []string{"ECG waveform 14:20", "12-lead report v2"},
			Confidence: ptr("0.89"),
			Quality:    ptr(caseroom.QualityGood),
		},
		SummaryUpdate: &caseroom.LlmSummary{
			LastUpdated: "14:32",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "HIGH (Arrhythmia)"),
				ind("Main Findings", "리듬 불안정 증가"),
				ind("Recent Changes", "Arrhythmia risk 상승"),
			},
			Narrative: "ECG 표준화 지표에서 리듬 불안정이 증가했습니다. " +
				"알림 이벤트가 케이스 룸과 타임라인에 반영되었습니다.",
			Evidence: []string{"ECG inference update", "Vitals trend log"},
		},
	}
}
