package mocks

import "github.com/stretchr/testify/mock"

type ServiceRegistry struct {
	mock.Mock
}

func (r *ServiceRegistry) IsRegisteredService(serviceId string) bool {
	args := r.Called(serviceId)
	return args.Bool(0)
}

func (r *ServiceRegistry) ServiceIds() []string {
	args := r.Called()
	return args.Get(0).([]string)
}
