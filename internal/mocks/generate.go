package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Directory --dir ../domain/team --output domain/team --outpkg teammock --filename directory_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/game --output domain/game --outpkg gamemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LanguageModel --dir ../domain/assistant --output domain/assistant --outpkg assistantmock --filename language_model_mock.go
