// Package fixtures holds the demo dataset the workspace starts from and the
// scripted live events played against it.
package fixtures

import (
	"github.com/medflow-ai/caseroom/internal/caseroom"
	"github.com/medflow-ai/caseroom/internal/document"
)

// Seed builds a fresh initial workspace state. Every call returns new
// slices and maps.
func Seed() caseroom.State {
	return caseroom.State{
		Patients:   patients(),
		Rooms:      caseRooms(),
		Archived:   archivedRooms(),
		Alerts:     alerts(),
		Messages:   messages(),
		Timelines:  timelines(),
		Insights:   insights(),
		Summaries:  summaries(),
		Activity:   activity(),
		Documents:  documents(),
		System:     systemStatus(),
		Connection: caseroom.ConnConnecting,
	}
}

func patients() []caseroom.Patient {
	return []caseroom.Patient{
		{
			ID: "pt-001", PatientID: "MRN-203144", Name: "김철수", Age: 67, Gender: "남",
			Location: "CICU", Bed: "CICU-12",
			DiagnosisTags: []string{"급성 심근경색", "AFib 의심"},
			RiskLevel:     caseroom.RiskCritical, Status: caseroom.StatusUnstable,
			EHRID: "EHR-203144", PACSID: "PACS-88-4321",
		},
		{
			ID: "pt-003", PatientID: "MRN-203845", Name: "박민수", Age: 58, Gender: "남",
			Location: "ICU", Bed: "ICU-03",
			DiagnosisTags: []string{"패혈성 쇼크", "저혈압"},
			RiskLevel:     caseroom.RiskHigh, Status: caseroom.StatusUnstable,
			EHRID: "EHR-203845", PACSID: "PACS-77-4029",
		},
		{
			ID: "pt-004", PatientID: "MRN-203772", Name: "최지원", Age: 62, Gender: "여",
			Location: "ER", Bed: "ER-02",
			DiagnosisTags: []string{"뇌졸중 의심", "CTA 진행"},
			RiskLevel:     caseroom.RiskHigh, Status: caseroom.StatusWatch,
			EHRID: "EHR-203772", PACSID: "PACS-12-3400",
		},
		{
			ID: "pt-002", PatientID: "MRN-203921", Name: "이영희", Age: 73, Gender: "여",
			Location: "NEU", Bed: "NEU-07",
			DiagnosisTags: []string{"경도인지장애", "MRI 추적"},
			RiskLevel:     caseroom.RiskMedium, Status: caseroom.StatusWatch,
			EHRID: "EHR-203921", PACSID: "PACS-91-1142",
		},
	}
}

func caseRooms() []caseroom.Room {
	return []caseroom.Room{
		{
			ID: "room-pt-001", Label: "김철수", Sublabel: "CICU-12 · ECG 위험 상승",
			PatientID: "pt-001", PatientCode: "MRN-203144",
			RiskLevel: caseroom.RiskCritical, Status: caseroom.RoomAuto,
			Activation:    "Arrhythmia risk HIGH 감지",
			RecentDomains: []caseroom.Domain{caseroom.DomainECG, caseroom.DomainICU},
			UpdatedAt:     "14:18", Unread: 3,
		},
		{
			ID: "room-pt-003", Label: "박민수", Sublabel: "ICU-03 · Risk spike",
			PatientID: "pt-003", PatientCode: "MRN-203845",
			RiskLevel: caseroom.RiskHigh, Status: caseroom.RoomPinned,
			Activation:    "ICU risk 78 → 92",
			RecentDomains: []caseroom.Domain{caseroom.DomainICU},
			UpdatedAt:     "14:08", Unread: 1,
		},
		{
			ID: "room-pt-004", Label: "최지원", Sublabel: "ER-02 · Imaging alert",
			PatientID: "pt-004", PatientCode: "MRN-203772",
			RiskLevel: caseroom.RiskHigh, Status: caseroom.RoomAuto,
			Activation:    "New lesion detected",
			RecentDomains: []caseroom.Domain{caseroom.DomainImaging},
			UpdatedAt:     "14:05", Unread: 2,
		},
	}
}

func archivedRooms() []caseroom.Room {
	return []caseroom.Room{
		{
			ID: "room-pt-002", Label: "이영희", Sublabel: "NEU-07 · Neuro follow-up",
			PatientID: "pt-002", PatientCode: "MRN-203921",
			RiskLevel: caseroom.RiskMedium, Status: caseroom.RoomArchived,
			Activation:    "Neuro follow-up 완료",
			RecentDomains: []caseroom.Domain{caseroom.DomainNeuro, caseroom.DomainImaging},
			UpdatedAt:     "13:20", Unread: 0,
		},
	}
}

func alerts() []caseroom.AlertFeedItem {
	return []caseroom.AlertFeedItem{
		{
			ID: "alert-icu", RoomID: "room-pt-003", PatientID: "pt-003",
			Domain: caseroom.DomainICU, Title: "ICU risk 급상승",
			Detail: "Risk score 78 → 92, MAP drop 감지", Time: "14:08",
			Severity: caseroom.RiskCritical, Change: "Risk 78 → 92",
		},
		{
			ID: "alert-imaging", RoomID: "room-pt-004", PatientID: "pt-004",
			Domain: caseroom.DomainImaging, Title: "Imaging 신규 병변",
			Detail: "CTA에서 LVO 의심 소견", Time: "14:05",
			Severity: caseroom.RiskHigh, Change: "Lesion detected",
		},
		{
			ID: "alert-ecg", RoomID: "room-pt-001", PatientID: "pt-001",
			Domain: caseroom.DomainECG, Title: "ECG 부정맥 확률 증가",
			Detail: "Arrhythmia probability 0.87", Time: "14:04",
			Severity: caseroom.RiskHigh, Change: "Risk LOW → HIGH",
		},
	}
}

func messages() map[string][]caseroom.Message {
	return map[string][]caseroom.Message{
		"room-pt-001": {
			{ID: "msg-001", Sender: "MedFlow AI", Role: "Alert Bot", Time: "14:04", Type: caseroom.MessageAlert,
				Content: "Arrhythmia risk increased to HIGH (0.87). 자동으로 케이스 룸 활성화."},
			{ID: "msg-002", Sender: "김보라", Role: "중환자실 RN", Time: "14:12", Type: caseroom.MessageClinician,
				Content: "SpO2 91% 지속. 산소요법 재확인했고 ABG 준비 중입니다."},
			{ID: "msg-003", Sender: "정현우", Role: "심장내과", Time: "14:15", Type: caseroom.MessageClinician,
				Content: "ECG 표준화 지표 확인했습니다. 리듬 트렌드 모니터링 중."},
			{ID: "msg-004", Sender: "MedFlow AI", Role: "Risk Monitor", Time: "14:16", Type: caseroom.MessageAI,
				Content: "Risk trend: Worsening. 주요 신호: HR 상승, 변동성 증가."},
		},
		"room-pt-003": {
			{ID: "msg-101", Sender: "MedFlow AI", Role: "Risk Monitor", Time: "14:08", Type: caseroom.MessageAlert,
				Content: "ICU risk increased from 78 → 92. Drivers: MAP drop, lactate 상승."},
			{ID: "msg-102", Sender: "장수진", Role: "중환자실 RN", Time: "14:10", Type: caseroom.MessageClinician,
				Content: "승압제 조정 후 재평가 예정. Lab 결과 업데이트 대기 중."},
		},
		"room-pt-004": {
			{ID: "msg-201", Sender: "MedFlow AI", Role: "Imaging", Time: "14:05", Type: caseroom.MessageAlert,
				Content: "CTA에서 신규 병변 감지. Urgency flag: HIGH."},
			{ID: "msg-202", Sender: "김현정", Role: "응급의학과", Time: "14:07", Type: caseroom.MessageClinician,
				Content: "Stroke Team 호출 완료. PACS 영상 검토 요청했습니다."},
		},
		"room-pt-002": {
			{ID: "msg-301", Sender: "MedFlow AI", Role: "Neuro AI", Time: "13:20", Type: caseroom.MessageAI,
				Content: "Cognitive decline risk MODERATE. 추적 데이터 기록 완료."},
		},
	}
}

func timelines() map[string][]caseroom.TimelineEvent {
	return map[string][]caseroom.TimelineEvent{
		"room-pt-001": {
			{Time: "12:50", Label: "ECG inference update", Type: caseroom.TimelineAI},
			{Time: "13:10", Label: "ABG 검사 수행", Type: caseroom.TimelineLab},
			{Time: "14:04", Label: "Arrhythmia risk HIGH → 케이스 룸 활성화", Type: caseroom.TimelineSystem},
			{Time: "14:16", Label: "Risk trend worsening 기록", Type: caseroom.TimelineAI},
		},
		"room-pt-003": {
			{Time: "13:40", Label: "Vitals/Labs batch ingest", Type: caseroom.TimelineSystem},
			{Time: "14:08", Label: "ICU risk 78 → 92 업데이트", Type: caseroom.TimelineAI},
			{Time: "14:10", Label: "승압제 조정 기록", Type: caseroom.TimelineClinical},
		},
		"room-pt-004": {
			{Time: "13:20", Label: "CTA 촬영 완료", Type: caseroom.TimelineClinical},
			{Time: "14:05", Label: "Imaging analysis update", Type: caseroom.TimelineAI},
			{Time: "14:07", Label: "Stroke Team 호출 기록", Type: caseroom.TimelineClinical},
		},
	}
}

func noData(d caseroom.Domain, note string) caseroom.DomainInsight {
	return caseroom.DomainInsight{
		Key:          d,
		Title:        d.Label(),
		Status:       caseroom.InsightNoData,
		LastUpdated:  "-",
		Standardized: []caseroom.Indicator{},
		RawOutputs:   []string{},
		Evidence:     []string{},
		Confidence:   "-",
		Quality:      caseroom.QualityMissing,
		Note:         note,
	}
}

func ind(label, value string) caseroom.Indicator {
	return caseroom.Indicator{Label: label, Value: value}
}

func insights() map[string][]caseroom.DomainInsight {
	return map[string][]caseroom.DomainInsight{
		"pt-001": {
			{
				Key: caseroom.DomainECG, Title: "ECG", Status: caseroom.InsightActive, LastUpdated: "14:10",
				Standardized: []caseroom.Indicator{
					ind("Arrhythmia Risk", "HIGH"),
					ind("Rhythm Trend", "Worsening"),
					ind("Key Segments", "Lead II 12:40–12:50"),
				},
				RawOutputs: []string{
					"Arrhythmia probability 0.87",
					"Rhythm instability index 0.72",
					"Top-k segments: Lead II 12:40–12:50",
				},
				Evidence:   []string{"ECG waveform", "12-lead report v2"},
				Confidence: "0.88", Quality: caseroom.QualityGood,
			},
			{
				Key: caseroom.DomainICU, Title: "ICU Risk", Status: caseroom.InsightActive, LastUpdated: "14:05",
				Standardized: []caseroom.Indicator{
					ind("Risk Score", "78 / 100"),
					ind("Risk Level", "HIGH"),
					ind("Trend (6h)", "Rising"),
				},
				Drivers: []string{"HR 상승", "BP 변동성", "SpO2 하락"},
				RawOutputs: []string{
					"Deterioration probability 0.78",
					"Feature contribution: HR 0.29, BP 0.21, SpO2 0.17",
				},
				Evidence:   []string{"Vitals 24h", "Lab panel 48h"},
				Confidence: "0.82", Quality: caseroom.QualityLimited,
			},
			noData(caseroom.DomainImaging, "최근 CT/MRI 데이터가 연결되지 않았습니다."),
			noData(caseroom.DomainNeuro, "Neuro 데이터 미연동"),
		},
		"pt-003": {
			{
				Key: caseroom.DomainICU, Title: "ICU Risk", Status: caseroom.InsightActive, LastUpdated: "14:08",
				Standardized: []caseroom.Indicator{
					ind("Risk Score", "92 / 100"),
					ind("Risk Level", "HIGH"),
					ind("Trend (6h)", "Rapid rise"),
				},
				Drivers: []string{"MAP drop", "Lactate 상승", "SpO2 변동"},
				RawOutputs: []string{
					"Deterioration probability 0.92",
					"Feature contribution: MAP 0.31, Lactate 0.24, SpO2 0.18",
				},
				Evidence:   []string{"Vitals 48h", "Lab panel 24h"},
				Confidence: "0.86", Quality: caseroom.QualityGood,
			},
			{
				Key: caseroom.DomainECG, Title: "ECG", Status: caseroom.InsightActive, LastUpdated: "13:55",
				Standardized: []caseroom.Indicator{
					ind("Arrhythmia Risk", "MODERATE"),
					ind("Rhythm Trend", "Stable"),
					ind("Key Segments", "Lead II 13:10–13:20"),
				},
				RawOutputs: []string{
					"Arrhythmia probability 0.36",
					"Rhythm instability index 0.41",
				},
				Evidence:   []string{"ECG waveform", "Rhythm summary"},
				Confidence: "0.79", Quality: caseroom.QualityLimited,
			},
			noData(caseroom.DomainImaging, "Imaging 데이터 없음"),
			noData(caseroom.DomainNeuro, "Neuro 데이터 없음"),
		},
		"pt-004": {
			{
				Key: caseroom.DomainImaging, Title: "Imaging", Status: caseroom.InsightActive, LastUpdated: "14:05",
				Standardized: []caseroom.Indicator{
					ind("Lesion Detected", "Yes"),
					ind("Volume", "12.4 ml"),
					ind("Progression", "Worsening"),
					ind("Urgency Flag", "HIGH"),
				},
				RawOutputs: []string{
					"Lesion segmentation mask (CTA)",
					"Volume delta +3.1 ml",
				},
				Evidence:   []string{"CTA snapshot", "PACS series 12-3400"},
				Confidence: "0.91", Quality: caseroom.QualityGood,
			},
			{
				Key: caseroom.DomainICU, Title: "ICU Risk", Status: caseroom.InsightActive, LastUpdated: "13:58",
				Standardized: []caseroom.Indicator{
					ind("Risk Score", "64 / 100"),
					ind("Risk Level", "MODERATE"),
					ind("Trend (6h)", "Stable"),
				},
				Drivers:    []string{"BP 변동", "Resp rate 상승"},
				RawOutputs: []string{"Deterioration probability 0.64"},
				Evidence:   []string{"Vitals 12h", "Lab panel"},
				Confidence: "0.75", Quality: caseroom.QualityLimited,
			},
			noData(caseroom.DomainECG, "ECG 연결 없음"),
			noData(caseroom.DomainNeuro, "Neuro 데이터 없음"),
		},
		"pt-002": {
			{
				Key: caseroom.DomainNeuro, Title: "Neuro", Status: caseroom.InsightActive, LastUpdated: "13:20",
				Standardized: []caseroom.Indicator{
					ind("Decline Risk Level", "MODERATE"),
					ind("Region Indicators", "해마 · 측두엽"),
					ind("Trend", "Gradual decline"),
				},
				RawOutputs: []string{
					"Cognitive decline probability 0.64",
					"Atrophy regions: Hippocampus, Temporal",
				},
				Evidence:   []string{"MRI T1 series", "Neuro test summary"},
				Confidence: "0.72", Quality: caseroom.QualityLimited,
			},
			noData(caseroom.DomainECG, "ECG 데이터 없음"),
			{
				Key: caseroom.DomainImaging, Title: "Imaging", Status: caseroom.InsightActive, LastUpdated: "13:15",
				Standardized: []caseroom.Indicator{
					ind("Lesion Detected", "No"),
					ind("Progression", "Stable"),
				},
				RawOutputs: []string{"Segmentation mask baseline (MRI)"},
				Evidence:   []string{"MRI baseline snapshot"},
				Confidence: "0.81", Quality: caseroom.QualityGood,
			},
			noData(caseroom.DomainICU, "ICU 데이터 없음"),
		},
	}
}

func summaries() map[string]caseroom.LlmSummary {
	return map[string]caseroom.LlmSummary{
		"pt-001": {
			LastUpdated: "14:16",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "HIGH (Arrhythmia)"),
				ind("Main Findings", "AFib 패턴 + SpO2 하락"),
				ind("Recent Changes", "2시간 내 위험도 +12%"),
			},
			Narrative: "최근 ECG 표준화 지표에서 리듬 이상이 증가했고, 산소포화도 하락이 동반되었습니다. " +
				"위험도 상승 이벤트가 케이스 룸 활성화 기준을 충족했습니다.",
			Evidence: []string{"ECG inference update", "Vitals trend log"},
		},
		"pt-003": {
			LastUpdated: "14:08",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "HIGH (ICU deterioration)"),
				ind("Main Findings", "MAP drop + lactate 상승"),
				ind("Recent Changes", "Risk 78 → 92"),
			},
			Narrative: "ICU 시계열 분석에서 위험도가 급상승했습니다. " +
				"주요 드라이버는 MAP 하락과 lactate 상승이며, 관련 이벤트가 타임라인에 기록되었습니다.",
			Evidence: []string{"ICU risk update", "Lab panel log"},
		},
		"pt-004": {
			LastUpdated: "14:05",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "HIGH (Imaging alert)"),
				ind("Main Findings", "CTA 병변 감지"),
				ind("Recent Changes", "Urgency flag HIGH"),
			},
			Narrative: "CTA 영상 분석에서 신규 병변이 감지되어 urgency flag가 상승했습니다. " +
				"자동 알림이 발송되어 케이스 룸이 활성화되었습니다.",
			Evidence: []string{"Imaging analysis update", "PACS snapshot"},
		},
		"pt-002": {
			LastUpdated: "13:20",
			Structured: []caseroom.Indicator{
				ind("Risk Level", "MODERATE (Neuro)"),
				ind("Main Findings", "해마/측두엽 위축 추세"),
				ind("Recent Changes", "MRI 추적 업데이트"),
			},
			Narrative: "Neuro 분석에서 완만한 인지 저하 패턴이 관찰됩니다. " +
				"최근 추적 MRI 데이터가 요약에 반영되었습니다.",
			Evidence: []string{"Neuro inference update", "MRI baseline"},
		},
	}
}

func activity() map[string][]caseroom.ActivityLog {
	return map[string][]caseroom.ActivityLog{
		"pt-001": {
			{Time: "14:16", Label: "LLM 요약 열람", Actor: "정현우 (MD)"},
			{Time: "14:12", Label: "ABG 결과 업로드", Actor: "김보라 (RN)"},
			{Time: "14:04", Label: "케이스 룸 자동 활성화", Actor: "MedFlow AI"},
		},
		"pt-003": {
			{Time: "14:10", Label: "Risk trend 확인", Actor: "장수진 (RN)"},
			{Time: "14:08", Label: "ICU risk alert 생성", Actor: "MedFlow AI"},
		},
		"pt-004": {
			{Time: "14:07", Label: "PACS 영상 열람", Actor: "Stroke Team"},
			{Time: "14:05", Label: "Imaging alert 생성", Actor: "MedFlow AI"},
		},
	}
}

func documents() map[string][]document.Document {
	return map[string][]document.Document{
		"pt-001": {
			{ID: "doc-ecg-01", Title: "CICU Arrhythmia Monitoring Protocol v3", Source: "Hospital protocol", UpdatedAt: "2024-02",
				Summary: "부정맥 위험도 분류 기준과 모니터링 체크리스트를 정리한 내부 프로토콜 요약.",
				Tags:    []string{"ECG", "Arrhythmia", "Protocol"}},
			{ID: "doc-icu-01", Title: "CICU Oxygenation Trend Guide", Source: "ICU guideline", UpdatedAt: "2023-11",
				Summary: "SpO2 하락 시 기록해야 할 지표와 경과 관찰 항목을 정리한 가이드.",
				Tags:    []string{"ICU", "Vitals", "Guide"}},
		},
		"pt-003": {
			{ID: "doc-icu-02", Title: "Sepsis Deterioration Indicators", Source: "Hospital protocol", UpdatedAt: "2024-01",
				Summary: "MAP, lactate, SpO2 변화 기준과 기록 방식 중심의 악화 지표 요약.",
				Tags:    []string{"ICU", "Sepsis", "Indicators"}},
			{ID: "doc-icu-03", Title: "ICU Trend Documentation Checklist", Source: "Internal checklist", UpdatedAt: "2023-08",
				Summary: "최근 6시간 트렌드 요약 시 포함해야 할 지표 및 근거 문서 목록.",
				Tags:    []string{"ICU", "Checklist", "Documentation"}},
		},
		"pt-004": {
			{ID: "doc-img-01", Title: "Stroke CTA Review Workflow", Source: "Imaging guideline", UpdatedAt: "2024-03",
				Summary: "CTA 영상 검토 순서, 병변 확인 항목, 문서화 기준을 정리한 가이드.",
				Tags:    []string{"Imaging", "CTA", "Workflow"}},
			{ID: "doc-img-02", Title: "LVO Suspicion Checklist", Source: "Hospital protocol", UpdatedAt: "2023-12",
				Summary: "LVO 의심 시 기록해야 할 체크 항목과 커뮤니케이션 기준 요약.",
				Tags:    []string{"Imaging", "Stroke", "Checklist"}},
		},
		"pt-002": {
			{ID: "doc-neuro-01", Title: "MCI Follow-up Documentation", Source: "Neurology guide", UpdatedAt: "2023-10",
				Summary: "인지 저하 추적 시 필요한 평가 항목과 비교 기록 포맷을 정리.",
				Tags:    []string{"Neuro", "MCI", "Follow-up"}},
			{ID: "doc-neuro-02", Title: "MRI Longitudinal Review Notes", Source: "Imaging guide", UpdatedAt: "2023-07",
				Summary: "연속 MRI 비교 시 확인해야 할 영역과 요약 작성 기준.",
				Tags:    []string{"Neuro", "MRI", "Guideline"}},
		},
	}
}

func systemStatus() caseroom.SystemStatus {
	return caseroom.SystemStatus{
		Websocket:   "connected",
		LastSync:    "2 min ago",
		DataLatency: "2m",
		Warnings:    []string{"PACS feed 18m delay", "Neuro data partial"},
	}
}
