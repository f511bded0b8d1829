package scheduler

import "testing"

func TestSchedulerAddJob(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	// Should add a valid cron job without error
	if err := s.AddJob("* * * * *", func() {}); err != nil {
		t.Errorf("Expected no error adding job, got %v", err)
	}
}

func TestSchedulerAddJob_InvalidExpr(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	if err := s.AddJob("not a cron expr", func() {}); err == nil {
		t.Error("Expected error for invalid cron expression, got nil")
	}
}

func TestSchedulerAddDailyJob(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()
	if err := s.AddDailyJob("08:00", func() {}); err != nil {
		t.Errorf("Expected no error adding daily job, got %v", err)
	}
}

func TestDailyExpr(t *testing.T) {
	tests := []struct {
		clock   string
		want    string
		wantErr bool
	}{
		{"08:00", "0 8 * * *", false},
		{"23:59", "59 23 * * *", false},
		{"0:5", "5 0 * * *", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"noon", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := dailyExpr(tc.clock)
		if tc.wantErr {
			if err == nil {
				t.Errorf("dailyExpr(%q): expected error, got %q", tc.clock, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("dailyExpr(%q): unexpected error %v", tc.clock, err)
			continue
		}
		if got != tc.want {
			t.Errorf("dailyExpr(%q) = %q, want %q", tc.clock, got, tc.want)
		}
	}
}
