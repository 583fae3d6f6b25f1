// Package project loads the pytoapk project file that sits next to a
// Python program. The android_app section provides the format arguments
// and optional icon and manifest replacements; the apk section names the
// Python sources and the skeleton repository.
//
// Files may be written in YAML, TOML or JSON:
//
//	android_app:
//	  app_name: My App
//	  app_id: com.example.myapp
//	  app_num_version: 3
//	  app_icon: res/icon.png
//	apk:
//	  source_dir: src
//
// Scaffold writes a starter file of this shape for the init command.
package project
