// Package catalog defines the fixed, ordered set of host-tuning action
// groups.
//
// Ownership boundary:
// - the tunable payload constants (what gets set, to which value)
// - the fixed group order
//
// Catalog does not execute anything; the pipeline applies it through a
// Runner.
package catalog

// Action is one named, idempotent tunable-setting call. Re-applying an
// action converges on the same host state as applying it once.
type Action struct {
	ID          string
	Description string
	Command     string
	Args        []string
}

// Group bundles related actions applied in order.
type Group struct {
	Name    string
	Actions []Action
}

// Kernel network tunables. The netparams group applies these live via
// sysctl -w and the artifact package persists the same pairs to
// /etc/sysctl.conf, so both sides read this one definition. Nothing
// reconciles a live host against the persisted file after the fact.
const (
	SomaxconnKey    = "kern.ipc.somaxconn"
	SomaxconnValue  = "2048"
	TCPMSLKey       = "net.inet.tcp.msl"
	TCPMSLValue     = "15000"
	DelayedACKKey   = "net.inet.tcp.delayed_ack"
	DelayedACKValue = "0"
	SendSpaceKey    = "net.inet.tcp.sendspace"
	SendSpaceValue  = "1048576"
	RecvSpaceKey    = "net.inet.tcp.recvspace"
	RecvSpaceValue  = "1048576"
)

// NetParams returns the kernel network key/value pairs in their fixed order.
func NetParams() [][2]string {
	return [][2]string{
		{SomaxconnKey, SomaxconnValue},
		{TCPMSLKey, TCPMSLValue},
		{DelayedACKKey, DelayedACKValue},
		{SendSpaceKey, SendSpaceValue},
		{RecvSpaceKey, RecvSpaceValue},
	}
}

// TuningGroups returns the groups applied before artifact persistence, in
// their fixed order. The slice is rebuilt per call so callers cannot mutate
// shared state.
func TuningGroups() []Group {
	sysctlActions := make([]Action, 0, 5)
	for _, kv := range NetParams() {
		sysctlActions = append(sysctlActions, Action{
			ID:          "netparams." + kv[0],
			Description: "Set " + kv[0] + "=" + kv[1],
			Command:     "sysctl",
			Args:        []string{"-w", kv[0] + "=" + kv[1]},
		})
	}

	return []Group{
		{
			Name: "spotlight",
			Actions: []Action{
				{
					ID:          "spotlight.indexing-off",
					Description: "Disable Spotlight indexing on all volumes",
					Command:     "mdutil",
					Args:        []string{"-a", "-i", "off"},
				},
			},
		},
		{
			Name: "animations",
			Actions: []Action{
				{
					ID:          "animations.window",
					Description: "Disable window open/close animations",
					Command:     "defaults",
					Args:        []string{"write", "NSGlobalDomain", "NSAutomaticWindowAnimationsEnabled", "-bool", "false"},
				},
				{
					ID:          "animations.resize",
					Description: "Minimize window resize animation time",
					Command:     "defaults",
					Args:        []string{"write", "NSGlobalDomain", "NSWindowResizeTime", "-float", "0.001"},
				},
				{
					ID:          "animations.dock-launch",
					Description: "Disable Dock launch animation",
					Command:     "defaults",
					Args:        []string{"write", "com.apple.dock", "launchanim", "-bool", "false"},
				},
				{
					ID:          "animations.expose",
					Description: "Disable Mission Control animation",
					Command:     "defaults",
					Args:        []string{"write", "com.apple.dock", "expose-animation-duration", "-float", "0"},
				},
			},
		},
		{
			Name: "visuals",
			Actions: []Action{
				{
					ID:          "visuals.reduce-motion",
					Description: "Reduce motion effects",
					Command:     "defaults",
					Args:        []string{"write", "com.apple.universalaccess", "reduceMotion", "-bool", "true"},
				},
				{
					ID:          "visuals.reduce-transparency",
					Description: "Reduce transparency effects",
					Command:     "defaults",
					Args:        []string{"write", "com.apple.universalaccess", "reduceTransparency", "-bool", "true"},
				},
			},
		},
		{
			Name: "services",
			Actions: []Action{
				{
					ID:          "services.crash-dialog",
					Description: "Suppress crash reporter dialogs",
					Command:     "defaults",
					Args:        []string{"write", "com.apple.CrashReporter", "DialogType", "none"},
				},
				{
					ID:          "services.analytics",
					Description: "Disable analytics submission daemon",
					Command:     "launchctl",
					Args:        []string{"disable", "system/com.apple.analyticsd"},
				},
				{
					ID:          "services.screensaver",
					Description: "Disable the screen saver",
					Command:     "defaults",
					Args:        []string{"-currentHost", "write", "com.apple.screensaver", "idleTime", "-int", "0"},
				},
			},
		},
		{
			Name: "power",
			Actions: []Action{
				{
					ID:          "power.sleep-off",
					Description: "Disable system sleep",
					Command:     "pmset",
					Args:        []string{"-a", "sleep", "0"},
				},
				{
					ID:          "power.disksleep-off",
					Description: "Disable disk sleep",
					Command:     "pmset",
					Args:        []string{"-a", "disksleep", "0"},
				},
				{
					ID:          "power.autorestart",
					Description: "Restart automatically after power loss",
					Command:     "pmset",
					Args:        []string{"-a", "autorestart", "1"},
				},
				{
					ID:          "power.womp",
					Description: "Enable wake on network access",
					Command:     "pmset",
					Args:        []string{"-a", "womp", "1"},
				},
				{
					ID:          "power.standby-off",
					Description: "Disable standby mode",
					Command:     "pmset",
					Args:        []string{"-a", "standby", "0"},
				},
			},
		},
		{
			Name:    "netparams",
			Actions: sysctlActions,
		},
	}
}

// FinishGroups returns the groups applied after artifact persistence, in
// their fixed order. UI-owning processes restart last so every visual
// tunable is picked up in one pass.
func FinishGroups() []Group {
	return []Group{
		{
			Name: "appnap",
			Actions: []Action{
				{
					ID:          "appnap.sleep-disabled",
					Description: "Disable automatic app suspension (App Nap)",
					Command:     "defaults",
					Args:        []string{"write", "NSGlobalDomain", "NSAppSleepDisabled", "-bool", "true"},
				},
				{
					ID:          "appnap.termination-disabled",
					Description: "Disable automatic app termination",
					Command:     "defaults",
					Args:        []string{"write", "NSGlobalDomain", "NSDisableAutomaticTermination", "-bool", "true"},
				},
			},
		},
		{
			Name: "uirefresh",
			Actions: []Action{
				{
					ID:          "uirefresh.dock",
					Description: "Restart Dock to apply visual changes",
					Command:     "killall",
					Args:        []string{"Dock"},
				},
				{
					ID:          "uirefresh.finder",
					Description: "Restart Finder to apply visual changes",
					Command:     "killall",
					Args:        []string{"Finder"},
				},
				{
					ID:          "uirefresh.systemuiserver",
					Description: "Restart SystemUIServer to apply visual changes",
					Command:     "killall",
					Args:        []string{"SystemUIServer"},
				},
			},
		},
	}
}
