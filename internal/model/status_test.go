package model

import "testing"

func TestLaunchState_IsActive(t *testing.T) {
	tests := []struct {
		state    LaunchState
		expected bool
	}{
		{LaunchStateIdle, false},
		{LaunchStateJavaCheck, true},
		{LaunchStateJavaInstall, true},
		{LaunchStateDistroValidate, true},
		{LaunchStateAssetDownload, true},
		{LaunchStateExtract, true},
		{LaunchStateLaunching, true},
		{LaunchStateRunning, true},
		{LaunchStateClosed, false},
		{LaunchStateCrashed, false},
		{LaunchStateFailed, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("LaunchState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestLaunchState_IsLaunching(t *testing.T) {
	if LaunchStateRunning.IsLaunching() {
		t.Error("Running should not count as launching")
	}
	if !LaunchStateLaunching.IsLaunching() {
		t.Error("Launching should count as launching")
	}
	if LaunchStateIdle.IsLaunching() {
		t.Error("Idle should not count as launching")
	}
}

func TestLaunchState_IsFinished(t *testing.T) {
	tests := []struct {
		state    LaunchState
		expected bool
	}{
		{LaunchStateIdle, false},
		{LaunchStateLaunching, false},
		{LaunchStateRunning, false},
		{LaunchStateCrashed, false},
		{LaunchStateClosed, true},
		{LaunchStateFailed, true},
	}

	for _, test := range tests {
		result := test.state.IsFinished()
		if result != test.expected {
			t.Errorf("LaunchState(%s).IsFinished() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestLaunchState_Transition(t *testing.T) {
	tests := []struct {
		from    LaunchState
		to      LaunchState
		allowed bool
	}{
		{LaunchStateIdle, LaunchStateJavaCheck, true},
		{LaunchStateIdle, LaunchStateRunning, false},
		{LaunchStateJavaCheck, LaunchStateJavaInstall, true},
		{LaunchStateDistroValidate, LaunchStateAssetDownload, true},
		{LaunchStateLaunching, LaunchStateRunning, true},
		{LaunchStateRunning, LaunchStateCrashed, true},
		{LaunchStateCrashed, LaunchStateRunning, false},
		{LaunchStateClosed, LaunchStateRunning, false},
		{LaunchStateFailed, LaunchStateLaunching, false},
		{LaunchStateRunning, LaunchStateRunning, true},
	}

	for _, test := range tests {
		next, err := test.from.Transition(test.to)
		if test.allowed {
			if err != nil || next != test.to {
				t.Errorf("Transition(%s -> %s) = %s, %v; expected allowed", test.from, test.to, next, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("Transition(%s -> %s) expected error", test.from, test.to)
		}
		if next != test.from {
			t.Errorf("Transition(%s -> %s) changed state to %s on failure", test.from, test.to, next)
		}
	}
}

func TestStatusColor_Hex(t *testing.T) {
	if StatusGreen.Hex() == StatusRed.Hex() {
		t.Error("Expected green and red to map to different colours")
	}
	if StatusColor("purple").Hex() != StatusGrey.Hex() {
		t.Error("Expected unknown status to map to grey")
	}
}

func TestServerStatus_PlayersText(t *testing.T) {
	online := ServerStatus{Online: true, OnlinePlayers: 3, MaxPlayers: 20}
	if got := online.PlayersText("OFFLINE"); got != "3/20" {
		t.Errorf("Expected '3/20', got '%s'", got)
	}

	offline := ServerStatus{}
	if got := offline.PlayersText("OFFLINE"); got != "OFFLINE" {
		t.Errorf("Expected 'OFFLINE', got '%s'", got)
	}
	if offline.Color() != StatusRed {
		t.Errorf("Expected offline server to be red, got %s", offline.Color())
	}
}
