package responses

type Health struct {
	Status        string `json:"status"`
	StorageDriver string `json:"storage_driver"`
	LockerDriver  string `json:"locker_driver"`
}
