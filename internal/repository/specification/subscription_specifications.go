package specification

import "gorm.io/gorm"

type ByGroup struct {
	GroupId string
}

func (s ByGroup) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("group_id = ?", s.GroupId)
}

type ByDevice struct {
	DeviceId string
}

func (s ByDevice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("device_id = ?", s.DeviceId)
}
