package site

// Card is a titled block with an optional bullet list.
type Card struct {
	Title       string
	Tag         string
	Description string
	Points      []string
	Tone        string
}

// Tab is one architecture tab.
type Tab struct {
	ID     string
	Label  string
	Blocks []Card
}

// Hero is the top section of the landing page.
type Hero struct {
	Badge       string
	Headline    string
	Lead        string
	Highlights  []string
	Features    []Card
	Reference   string
	SnapshotTag string
	Snapshot    string
	Safety      string
}

// Mobile is the mobile-app mockup section.
type Mobile struct {
	Intro      string
	Frames     []Card
	Principles []string
}

// Footer carries the closing notices.
type Footer struct {
	Purpose    string
	Copyright  string
	Disclaimer string
}

// Content holds every static section of the landing page.
type Content struct {
	Title        string
	Nav          []Link
	Hero         Hero
	Capabilities []Card
	Scenarios    []Card
	Architecture []Tab
	Expansion    []Card
	DemoIntro    string
	Mobile       Mobile
	Footer       Footer
}

// Link is an in-page navigation anchor.
type Link struct {
	Anchor string
	Label  string
}

// Section anchors.
const (
	AnchorHero         = "hero"
	AnchorFeatures     = "features"
	AnchorArchitecture = "architecture"
	AnchorDemo         = "demo-workspace"
	AnchorMobile       = "mobile"
	AnchorFooter       = "footer"
)

// DefaultContent returns the MedFlow AI landing copy.
func DefaultContent() Content {
	return Content{
		Title: "MedFlow AI",
		Nav: []Link{
			{Anchor: AnchorFeatures, Label: "핵심 기능"},
			{Anchor: AnchorFeatures, Label: "임상 시나리오"},
			{Anchor: AnchorDemo, Label: "데모"},
			{Anchor: AnchorArchitecture, Label: "아키텍처"},
		},
		Hero: Hero{
			Badge:    "병원 중심 멀티모달 임상 플랫폼",
			Headline: "MedFlow AI",
			Lead: "모델 결과를 임상 표준화 지표로 변환해 케이스 룸을 자동 활성화하고, " +
				"우선순위/협업/타임라인/요약까지 연결합니다.",
			Highlights: []string{
				"알림 기준으로 케이스 룸 자동 활성화",
				"환자 케이스 중심 채팅/타임라인",
				"Raw output은 숨기고 근거만 노출",
				"Structured data 기반, 진단/치료 권고 없음",
			},
			Features: []Card{
				{Title: "AI Alert Feed", Description: "모델 변화 기반 알림과 우선순위 자동 재정렬"},
				{Title: "Case Room Workflow", Description: "자동 활성/핀/아카이브로 케이스 중심 협업"},
				{Title: "Standardization Layer", Description: "Raw → 임상 지표 변환 + 근거 데이터 연결"},
				{Title: "Audit & Safety", Description: "Role 기반 접근 제어와 감사 로그"},
			},
			Reference: "레퍼런스: viz.ai의 실시간 영상 알림 워크플로우에서 영감을 받았습니다. " +
				"MedFlow AI는 멀티모달 통합과 표준화 레이어, 케이스 룸 협업 UX로 확장합니다.",
			SnapshotTag: "심장 · 영상 · ICU · Neuro",
			Snapshot:    "각 모델은 독립 배포되며 임상 워크플로우는 동일하게 유지됩니다.",
			Safety:      "백엔드는 오케스트레이션만 수행하고 모든 추론은 AI 서비스로 분리됩니다.",
		},
		Capabilities: []Card{
			{Title: "AI Alert Feed", Description: "모델 변화 기반 알림이 케이스 룸을 자동 활성화",
				Points: []string{"위험도 변화 트리거", "우선순위 자동 정렬", "알림 클릭 시 케이스 오픈"}},
			{Title: "Case Room Lifecycle", Description: "협업, 타임라인, 데이터 탭을 한 흐름으로 통합",
				Points: []string{"자동 활성/핀/아카이브", "Chat + Overview/Analysis/Timeline", "모바일 알림 연계"}},
			{Title: "Clinical Standardization", Description: "Raw output → 임상 지표로 변환 후 기본 노출",
				Points: []string{"근거 데이터 링크", "Confidence/품질 표기", "Raw output 기본 숨김"}},
			{Title: "Role & Audit", Description: "역할 기반 접근과 감사 로그로 상용화 수준 강화",
				Points: []string{"Doctor/Nurse/Admin", "Audit log 추적", "다운로드 권한 분리"}},
			{Title: "LLM Summary", Description: "타임라인 기반 안전 요약과 질문 응답",
				Points: []string{"Structured summary", "Evidence links", "No diagnosis"}},
			{Title: "Real-time WebSocket", Description: "알림과 메시지를 실시간 스트림으로 전달",
				Points: []string{"연결 상태 표시", "지연/누락 경고", "실시간 알림 스트림"}},
			{Title: "Document Search", Description: "Vector DB 기반 문서 검색 + LLM/LLQ 질의",
				Points: []string{"자연어 질의", "Top-K 문서 요약", "원문 링크"}},
		},
		Scenarios: []Card{
			{
				Title: "ICU Risk 급상승 시나리오", Tag: "Critical Care", Tone: "critical",
				Description: "Vital/Lab 시계열 모델이 악화 위험도 급상승을 감지하면 AI 알림이 생성되고 케이스 룸이 자동 활성화됩니다.",
				Points: []string{
					"Risk 78 → 92 변화 기반 알림 생성",
					"환자 리스트 우선순위 자동 재정렬",
					"케이스 룸 타임라인에 Risk update 기록",
					"LLM 요약이 Timeline 이벤트를 근거로 생성",
				},
			},
			{
				Title: "Imaging 신규 병변 감지", Tag: "Imaging Triage", Tone: "high",
				Description: "CT/MRI 분석에서 병변이 감지되면 Urgency flag가 부여되고 케이스 룸에 자동 이벤트가 생성됩니다.",
				Points: []string{
					"Lesion detected + Progression 업데이트",
					"Imaging 패널에 스냅샷/오버레이 제공",
					"Chat 메시지로 “review recommended” 알림",
					"Timeline에 imaging update 기록",
				},
			},
			{
				Title: "ECG 부정맥 확률 증가", Tag: "Cardio AI", Tone: "info",
				Description: "ECG 모델이 부정맥 확률 상승을 감지하면 표준화 지표가 업데이트되고 케이스 룸이 활성화됩니다.",
				Points: []string{
					"Arrhythmia Risk: LOW → HIGH 변경",
					"채팅 메시지로 risk 상승 이벤트 공유",
					"ECG 트렌드 카드 업데이트",
					"Timeline에 inference update 기록",
				},
			},
		},
		Architecture: []Tab{
			{ID: "overview", Label: "전체 구조", Blocks: []Card{
				{Title: "Frontend", Description: "Case room UI, Alert Feed, Chat/Timeline/Data 탭, Role-based view"},
				{Title: "Realtime", Description: "WebSocket 기반 알림/메시지 스트림, 연결 상태 모니터링"},
				{Title: "Backend", Description: "케이스 룸 활성화 규칙, 알림 라우팅, RBAC, Audit logging"},
				{Title: "AI Services", Description: "ECG/Imaging/ICU/Neuro 분석 결과 생성 → 표준화 레이어로 전달"},
				{Title: "LLM Summary", Description: "표준화 지표 + 타임라인 이벤트 기반 요약/질문 응답"},
				{Title: "Document Search", Description: "Vector DB 문서 검색 + 근거 기반 요약/질의 응답"},
			}},
			{ID: "ai-models", Label: "AI 모델", Blocks: []Card{
				{Title: "ECG", Points: []string{"부정맥 감지", "HRV 분석", "리듬 분류"}},
				{Title: "Imaging", Points: []string{"병변 세그멘테이션", "진행도 추적", "용적 측정"}},
				{Title: "ICU", Points: []string{"악화 위험 예측", "요인 설명", "재원 기간 예측"}},
				{Title: "Neuro", Points: []string{"인지 저하 예측", "위축 매핑", "진행 시뮬레이션"}},
				{Title: "LLM", Points: []string{
					"구조화된 AI 결과 통합 및 요약",
					"환자 변화 추세 자연어 설명",
					"진단/치료 권고 없이 질문 응답",
				}},
			}},
			{ID: "pipeline", Label: "데이터 파이프라인", Blocks: []Card{
				{Title: "Separation of concerns", Description: "의료 추론은 전담 AI 서비스에서만 수행. 백엔드는 오케스트레이션만 담당하여 책임 명확화"},
				{Title: "Domain independence", Description: "각 임상 도메인이 독립적으로 진화 가능. 새로운 모델 추가/교체가 타 시스템에 영향 없음"},
				{Title: "Scalability", Description: "마이크로서비스 아키텍처로 독립적 스케일링 가능. 부하 분산 및 무중단 업데이트 지원"},
			}},
			{ID: "tech-stack", Label: "기술 스택", Blocks: []Card{
				{Title: "Frontend", Points: []string{"React + TypeScript", "Next.js (App Router)", "Tailwind CSS", "WebSocket", "Recharts"}},
				{Title: "Backend", Points: []string{"Node.js + NestJS", "REST + WebSocket", "JWT Auth", "RBAC"}},
			}},
		},
		Expansion: []Card{
			{Title: "SSO & Role token", Description: "SSO 연동과 역할 기반 access token으로 병원 계정을 통합합니다.",
				Points: []string{"Role-based token", "기관별 정책", "세션 감사"}},
			{Title: "의료진 목록 (친구 탭)", Description: "온라인 상태, 1:1 메시지, 그룹 초대가 가능한 팀 디렉터리를 제공합니다.",
				Points: []string{"Presence", "Mentions", "Group invite"}},
			{Title: "PC–Mobile 연동", Description: "반응형 UI와 PWA 설치로 모바일에서도 알림/채팅/패널을 이어갑니다.",
				Points: []string{"Responsive UI", "PWA", "Push alert"}},
			{Title: "문서 검색 & Vector DB", Description: "논문/프로토콜/내부 자료를 벡터 검색으로 찾고 LLM/LLQ 질의를 제공합니다.",
				Points: []string{"Semantic search", "Top-K docs", "Evidence summary"}},
		},
		DemoIntro: "AI 알림과 임상 액션이 케이스 룸을 활성화하고, 표준화 지표가 우선순위와 협업 흐름을 직접 구동합니다. " +
			"모든 환자가 채팅방이 되는 구조가 아니라 “임상적으로 의미 있는 순간”에만 케이스가 활성화됩니다.",
		Mobile: Mobile{
			Intro: "알림, 케이스 요약, 핸드오프, 온콜 로스터, 프로토콜 조회까지 포함한 모바일 데모 플로우를 제안합니다. " +
				"상세 분석은 데스크톱에서 수행합니다.",
			Frames: []Card{
				{Title: "Alerts (Default)", Tag: "alerts", Points: []string{"AI alert feed", "Team routing"}},
				{Title: "Alert Detail", Tag: "alerts", Points: []string{"Model change summary", "Urgency badge"}},
				{Title: "Quick Actions", Tag: "alerts", Points: []string{"Acknowledge", "Assign/Escalate", "Call team"}},
				{Title: "Cases Tab", Tag: "cases", Points: []string{"Active / pinned / assigned"}},
				{Title: "Case List", Tag: "cases", Points: []string{"Priority ordering", "Alert badges"}},
				{Title: "Case Summary (Mobile)", Tag: "cases", Points: []string{"Risk summary", "Recent timeline", "Quick actions"}},
				{Title: "Handoff Note", Tag: "cases", Points: []string{"Shift summary", "Owner handoff"}},
				{Title: "Team On-call", Tag: "team", Points: []string{"Roster status", "Coverage map"}},
				{Title: "Escalation Tree", Tag: "team", Points: []string{"Call chain", "Auto paging"}},
				{Title: "Document Search", Tag: "tools", Points: []string{"Evidence only", "Top documents"}},
				{Title: "Device Status", Tag: "tools", Points: []string{"WebSocket health", "Security status"}},
			},
			Principles: []string{
				"팀 알림 수신과 빠른 케이스 진입 중심",
				"핸드오프 노트와 체크리스트 지원",
				"온콜 로스터/에스컬레이션 트리 제공",
				"프로토콜/문헌 빠른 조회 (evidence only)",
				"상세 분석은 데스크톱에서 수행",
				"진단/치료 권고 없음",
			},
		},
		Footer: Footer{
			Purpose:    "본 프레젠테이션은 팀 설득 및 기술 아키텍처 공유 목적으로 제작되었습니다",
			Copyright:  "© 2026 MedFlow AI Team. All rights reserved.",
			Disclaimer: "실제 임상 배치를 위해서는 별도의 규제 검토, 임상 시험, 인허가 절차가 필요합니다.",
		},
	}
}
