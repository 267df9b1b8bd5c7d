package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseSceneYAML はYAMLバイト列からシーン入力をパースして返します。
// この関数はステートレスであり、正規化は行いません。
func ParseSceneYAML(data []byte) (SceneInput, error) {
	var input SceneInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return SceneInput{}, fmt.Errorf("シーンYAMLのパースに失敗しました: %w", err)
	}
	return input, nil
}
