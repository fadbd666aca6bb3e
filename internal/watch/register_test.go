package watch

import "testing"

// advance runs a full begin/Advance/commit step on the register.
func advance(r *TimeRegister) {
	r.begin()
	r.Advance()
	r.commit()
}

func TestTimeOfDay_cascade(t *testing.T) {
	tests := []struct {
		name string
		from TimeOfDay
		want TimeOfDay
	}{
		{"plain", TimeOfDay{12, 30, 15}, TimeOfDay{12, 30, 16}},
		{"second carry", TimeOfDay{12, 30, 59}, TimeOfDay{12, 31, 0}},
		{"minute carry", TimeOfDay{12, 59, 59}, TimeOfDay{13, 0, 0}},
		{"midnight wrap", TimeOfDay{23, 59, 59}, TimeOfDay{0, 0, 0}},
	}
	for _, tc := range tests {
		if got := tc.from.Next(); got != tc.want {
			t.Errorf("%s: %v.Next() = %v, want %v", tc.name, tc.from, got, tc.want)
		}
	}
}

func TestTimeRegister_sixtyAdvances(t *testing.T) {
	var r TimeRegister
	if err := r.SetField(FieldHours, 7); err != nil {
		t.Fatal(err)
	}
	if err := r.SetField(FieldMinutes, 41); err != nil {
		t.Fatal(err)
	}
	r.commit()

	for i := 0; i < 60; i++ {
		advance(&r)
	}
	want := TimeOfDay{Hours: 7, Minutes: 42, Seconds: 0}
	if r.Value() != want {
		t.Fatalf("60 advances from 07:41:00 = %v, want %v", r.Value(), want)
	}
}

func TestTimeRegister_oneHourElapses(t *testing.T) {
	var r TimeRegister
	for i := 0; i < 3600; i++ {
		advance(&r)
	}
	want := TimeOfDay{Hours: 1}
	if r.Value() != want {
		t.Fatalf("3600 advances from zero = %v, want %v", r.Value(), want)
	}
}

func TestTimeRegister_wrapLaws(t *testing.T) {
	starts := []TimeOfDay{{0, 0, 0}, {5, 1, 0}, {23, 59, 59}, {11, 30, 30}}
	for _, start := range starts {
		r := TimeRegister{cur: start}

		for i := 0; i < 24; i++ {
			r.begin()
			r.Bump(FieldHours)
			r.commit()
		}
		if r.Value() != start {
			t.Fatalf("24 hour bumps from %v = %v, want unchanged", start, r.Value())
		}

		for i := 0; i < 60; i++ {
			r.begin()
			r.Bump(FieldMinutes)
			r.commit()
		}
		if r.Value() != start {
			t.Fatalf("60 minute bumps from %v = %v, want unchanged", start, r.Value())
		}

		for i := 0; i < 60; i++ {
			r.begin()
			r.Bump(FieldSeconds)
			r.commit()
		}
		if r.Value() != start {
			t.Fatalf("60 second bumps from %v = %v, want unchanged", start, r.Value())
		}
	}
}

func TestTimeRegister_bumpNoCarry(t *testing.T) {
	r := TimeRegister{cur: TimeOfDay{Hours: 10, Minutes: 59, Seconds: 30}}
	r.begin()
	r.Bump(FieldMinutes)
	r.commit()
	want := TimeOfDay{Hours: 10, Minutes: 0, Seconds: 30}
	if r.Value() != want {
		t.Fatalf("minute bump at 59 = %v, want %v (no carry on user edit)", r.Value(), want)
	}
}

func TestTimeRegister_setFieldIdempotent(t *testing.T) {
	r := TimeRegister{cur: TimeOfDay{Hours: 9, Minutes: 15, Seconds: 42}}
	r.begin()
	if err := r.SetField(FieldHours, 9); err != nil {
		t.Fatal(err)
	}
	if err := r.SetField(FieldMinutes, 15); err != nil {
		t.Fatal(err)
	}
	if err := r.SetField(FieldSeconds, 42); err != nil {
		t.Fatal(err)
	}
	r.commit()
	if got := r.Value(); got != (TimeOfDay{9, 15, 42}) {
		t.Fatalf("SetField with current values changed register to %v", got)
	}
}

func TestTimeRegister_setFieldBounds(t *testing.T) {
	var r TimeRegister
	tests := []struct {
		f  Field
		v  int
		ok bool
	}{
		{FieldHours, 0, true},
		{FieldHours, 23, true},
		{FieldHours, 24, false},
		{FieldHours, -1, false},
		{FieldMinutes, 59, true},
		{FieldMinutes, 60, false},
		{FieldSeconds, 59, true},
		{FieldSeconds, 60, false},
		{FieldNone, 0, false},
	}
	for _, tc := range tests {
		err := r.SetField(tc.f, tc.v)
		if tc.ok && err != nil {
			t.Errorf("SetField(%s, %d): unexpected error: %v", tc.f, tc.v, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("SetField(%s, %d): expected error", tc.f, tc.v)
		}
	}
}

func TestAlarmRegister_minuteGranular(t *testing.T) {
	var r AlarmRegister
	if err := r.SetField(FieldSeconds, 10); err == nil {
		t.Fatal("alarm register must reject the seconds field")
	}
	if err := r.SetField(FieldHours, 6); err != nil {
		t.Fatal(err)
	}
	if err := r.SetField(FieldMinutes, 30); err != nil {
		t.Fatal(err)
	}
	r.commit()
	if got := r.Value(); got.Hours != 6 || got.Minutes != 30 || got.Armed {
		t.Fatalf("alarm = %v, want 06:30 disarmed", got)
	}
}

func TestAlarmRegister_bumpAndToggle(t *testing.T) {
	r := AlarmRegister{cur: AlarmSetting{Hours: 23, Minutes: 59}}
	r.begin()
	r.Bump(FieldHours)
	r.commit()
	if r.Value().Hours != 0 {
		t.Fatalf("hour bump at 23 = %d, want 0", r.Value().Hours)
	}
	r.begin()
	r.Bump(FieldMinutes)
	r.commit()
	if r.Value().Minutes != 0 {
		t.Fatalf("minute bump at 59 = %d, want 0", r.Value().Minutes)
	}

	r.begin()
	r.ToggleArmed()
	r.commit()
	if !r.Value().Armed {
		t.Fatal("toggle must arm a disarmed alarm")
	}
	r.begin()
	r.ToggleArmed()
	r.commit()
	if r.Value().Armed {
		t.Fatal("toggle must disarm an armed alarm")
	}
}

func TestAlarmRegister_reset(t *testing.T) {
	r := AlarmRegister{cur: AlarmSetting{Hours: 12, Minutes: 34, Armed: true}}
	r.begin()
	r.Reset()
	r.commit()
	if r.Value() != (AlarmSetting{}) {
		t.Fatalf("reset alarm = %v, want zero disarmed", r.Value())
	}
}
