package alarmv1

// SystemActor identifies the host and user that issued a request.
type SystemActor struct {
	Hostname string `json:"hostname,omitempty"`
	Username string `json:"username,omitempty"`
}

// GetHostname returns the hostname or an empty string for a nil actor.
func (x *SystemActor) GetHostname() string {
	if x == nil {
		return ""
	}

	return x.Hostname
}

// GetUsername returns the username or an empty string for a nil actor.
func (x *SystemActor) GetUsername() string {
	if x == nil {
		return ""
	}

	return x.Username
}

// Alarm is one alarm definition on the wire.
type Alarm struct {
	Id        string `json:"id"` //nolint:revive // Wire naming.
	Hour      int32  `json:"hour"`
	Minute    int32  `json:"minute"`
	Label     string `json:"label"`
	Enabled   bool   `json:"enabled"`
	Vibrate   bool   `json:"vibrate"`
	SoundFile string `json:"sound_file,omitempty"`
	Ringing   bool   `json:"ringing"`
}

// GetId returns the alarm id.
func (x *Alarm) GetId() string { //nolint:revive // Wire naming.
	if x == nil {
		return ""
	}

	return x.Id
}

// ListAlarmsRequest asks for every stored alarm.
type ListAlarmsRequest struct{}

// ListAlarmsResponse carries the alarm list.
type ListAlarmsResponse struct {
	Alarms []*Alarm `json:"alarms"`
}

// GetAlarms returns the alarm list.
func (x *ListAlarmsResponse) GetAlarms() []*Alarm {
	if x == nil {
		return nil
	}

	return x.Alarms
}

// CreateAlarmRequest asks to store a new alarm.
type CreateAlarmRequest struct {
	Actor   *SystemActor `json:"actor,omitempty"`
	Hour    int32        `json:"hour"`
	Minute  int32        `json:"minute"`
	Label   string       `json:"label,omitempty"`
	Vibrate bool         `json:"vibrate"`
}

// GetActor returns the requesting actor.
func (x *CreateAlarmRequest) GetActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.Actor
}

// CreateAlarmResponse carries the id of the created alarm.
type CreateAlarmResponse struct {
	Id string `json:"id"` //nolint:revive // Wire naming.
}

// GetId returns the created alarm id.
func (x *CreateAlarmResponse) GetId() string { //nolint:revive // Wire naming.
	if x == nil {
		return ""
	}

	return x.Id
}

// ToggleAlarmRequest asks to flip the enabled flag of an alarm.
type ToggleAlarmRequest struct {
	Actor *SystemActor `json:"actor,omitempty"`
	Id    string       `json:"id"` //nolint:revive // Wire naming.
}

// GetActor returns the requesting actor.
func (x *ToggleAlarmRequest) GetActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.Actor
}

// GetId returns the target alarm id.
func (x *ToggleAlarmRequest) GetId() string { //nolint:revive // Wire naming.
	if x == nil {
		return ""
	}

	return x.Id
}

// ToggleAlarmResponse is empty.
type ToggleAlarmResponse struct{}

// DeleteAlarmRequest asks to remove an alarm.
type DeleteAlarmRequest struct {
	Actor *SystemActor `json:"actor,omitempty"`
	Id    string       `json:"id"` //nolint:revive // Wire naming.
}

// GetActor returns the requesting actor.
func (x *DeleteAlarmRequest) GetActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.Actor
}

// GetId returns the target alarm id.
func (x *DeleteAlarmRequest) GetId() string { //nolint:revive // Wire naming.
	if x == nil {
		return ""
	}

	return x.Id
}

// DeleteAlarmResponse is empty.
type DeleteAlarmResponse struct{}

// StopRingingRequest asks the server to dismiss its alert.
type StopRingingRequest struct {
	Actor *SystemActor `json:"actor,omitempty"`
}

// GetActor returns the requesting actor.
func (x *StopRingingRequest) GetActor() *SystemActor {
	if x == nil {
		return nil
	}

	return x.Actor
}

// StopRingingResponse is empty.
type StopRingingResponse struct{}

// GetRingingStatusRequest asks for the authoritative ringing status.
type GetRingingStatusRequest struct{}

// RingingStatusResponse reports whether the server rings and why.
type RingingStatusResponse struct {
	Ringing bool   `json:"ringing"`
	Label   string `json:"label,omitempty"`
	AlarmId string `json:"alarm_id,omitempty"` //nolint:revive // Wire naming.
}

// GetRinging reports the ringing flag.
func (x *RingingStatusResponse) GetRinging() bool {
	if x == nil {
		return false
	}

	return x.Ringing
}

// GetLabel returns the ringing label.
func (x *RingingStatusResponse) GetLabel() string {
	if x == nil {
		return ""
	}

	return x.Label
}

// GetAlarmId returns the ringing alarm id.
func (x *RingingStatusResponse) GetAlarmId() string { //nolint:revive // Wire naming.
	if x == nil {
		return ""
	}

	return x.AlarmId
}
