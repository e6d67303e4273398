package relay

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"survey-relay/api/internal/llm"
	"survey-relay/api/internal/notify"
	"survey-relay/api/internal/survey"
)

type fakeEngine struct {
	reply string
	err   error
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }
func (f *fakeEngine) Complete(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.reply, f.err
}

type recorder struct {
	name string
	err  error

	mu   sync.Mutex
	sent []notify.Message
}

func (r *recorder) Name() string { return r.name }
func (r *recorder) Send(_ context.Context, m notify.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return r.err
}

func newService(t *testing.T, eng llm.Engine, primary notify.Channel, opts ...Option) *Service {
	t.Helper()
	tmpl, err := llm.LoadPrompt("")
	if err != nil {
		t.Fatalf("load prompt: %v", err)
	}
	opts = append(opts, WithClock(func() time.Time { return time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC) }))
	return New(llm.NewAnalyzer(eng, tmpl, zerolog.Nop()), primary, zerolog.Nop(), opts...)
}

func payload() survey.Payload {
	return survey.Payload{Data: survey.PayloadData{
		FormName:   "성인 설문",
		ResponseID: "resp-1",
		Fields: []survey.RawField{
			{Label: "성함", Value: "홍길동"},
			{Label: "성별", Value: "남성"},
			{Label: "나이", Value: "35"},
			{Label: "치료받고 싶은 증상 (1순위)", Value: "두통 3개월 전부터"},
			{Label: "오늘 날씨는?", Value: "맑음"},
		},
	}}
}

const reply = "```json\n{\"constitution\":{\"type\":\"소양인\",\"confidence\":\"중간\"}}\n```"

func TestProcess_DeliversToAllChannels(t *testing.T) {
	primary := &recorder{name: "slack"}
	staff := &recorder{name: "telegram"}
	s := newService(t, &fakeEngine{reply: reply}, primary, WithStaff(staff))

	out, err := s.Process(context.Background(), payload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "resp-1" {
		t.Errorf("expected response id, got %q", out.ID)
	}
	if out.Record.Get(survey.Name) != "홍길동" || out.Analysis.Constitution.Type != "소양인" {
		t.Errorf("unexpected outcome %+v", out.Analysis.Constitution)
	}
	if !strings.Contains(out.Chart, "체질: 소양인 (신뢰도: 중간)") {
		t.Errorf("chart missing constitution:\n%s", out.Chart)
	}
	if len(primary.sent) != 1 || !strings.HasPrefix(primary.sent[0].Text, "새 환자 설문: 홍길동") {
		t.Errorf("unexpected clinician messages %+v", primary.sent)
	}
	if len(staff.sent) != 1 || !strings.Contains(staff.sent[0].Text, "추정 체질: 소양인") {
		t.Errorf("unexpected staff messages %+v", staff.sent)
	}
}

func TestProcess_GeneratesIDWithoutResponseID(t *testing.T) {
	p := payload()
	p.Data.ResponseID = ""
	out, err := newService(t, &fakeEngine{reply: "{}"}, &recorder{name: "slack"}).Process(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.ID) != 36 {
		t.Errorf("expected uuid, got %q", out.ID)
	}
}

func TestProcess_UnparseableReplyStillDelivers(t *testing.T) {
	primary := &recorder{name: "slack"}
	out, err := newService(t, &fakeEngine{reply: "죄송합니다. 분석할 수 없습니다."}, primary).Process(context.Background(), payload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Analysis.ParseError {
		t.Error("expected parse error flag")
	}
	if len(primary.sent) != 1 {
		t.Fatalf("expected one clinician message, got %d", len(primary.sent))
	}
}

func TestProcess_EngineErrorStopsDelivery(t *testing.T) {
	primary := &recorder{name: "slack"}
	s := newService(t, &fakeEngine{err: llm.ErrMissingAPIKey}, primary)

	_, err := s.Process(context.Background(), payload())
	if !errors.Is(err, ErrMissingLLMKey) {
		t.Fatalf("expected ErrMissingLLMKey, got %v", err)
	}
	if len(primary.sent) != 0 {
		t.Errorf("nothing should be delivered, got %d", len(primary.sent))
	}
}

func TestProcess_PrimaryFailureIsFatal(t *testing.T) {
	primary := &recorder{name: "slack", err: errors.New("Slack 전송 실패: 500 Internal Server Error")}
	staff := &recorder{name: "telegram"}
	_, err := newService(t, &fakeEngine{reply: "{}"}, primary, WithStaff(staff)).Process(context.Background(), payload())
	if err == nil || !strings.Contains(err.Error(), "Slack 전송 실패") {
		t.Fatalf("expected delivery error, got %v", err)
	}
	if len(staff.sent) != 0 {
		t.Error("staff must not be notified after a failed clinician delivery")
	}
}

func TestProcess_StaffFailureIsIgnored(t *testing.T) {
	staff := &recorder{name: "telegram", err: errors.New("chat not found")}
	if _, err := newService(t, &fakeEngine{reply: "{}"}, &recorder{name: "slack"}, WithStaff(staff)).Process(context.Background(), payload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyze_ContextCanceled(t *testing.T) {
	s := newService(t, &fakeEngine{reply: "{}"}, &recorder{name: "slack"}, WithTimeout(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Analyze(ctx, survey.NewRecord(nil)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context error, got %v", err)
	}
}

func TestReportFailure(t *testing.T) {
	primary := &recorder{name: "slack"}
	s := newService(t, &fakeEngine{}, primary)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.ReportFailure(ctx, errors.New("gemini analysis: quota"))
	if len(primary.sent) != 1 || primary.sent[0].Text != "⚠️ 설문 분석 오류: gemini analysis: quota" {
		t.Errorf("unexpected messages %+v", primary.sent)
	}

	s.ReportFailure(context.Background(), nil)
	if len(primary.sent) != 1 {
		t.Error("nil cause must not be reported")
	}
}
