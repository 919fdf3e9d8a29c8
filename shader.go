package main

const vsPointsSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	layout (location = 1) in vec3 aVertexColor;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform vec3 uColor;
	uniform float uPointSize;
	uniform float uScale;
	uniform bool uSizeAttenuation;
	uniform bool uVertexColors;
	uniform float uOpacity;
	vec4 viewPosition;
	out lowp vec4 vColor;

	void main(void) {
		viewPosition = uModelViewMatrix * aVertexPosition;
		gl_Position = uProjectionMatrix * viewPosition;
		if (uSizeAttenuation) {
			gl_PointSize = max(1.0, uPointSize * uScale / -viewPosition.z);
		} else {
			gl_PointSize = uPointSize;
		}
		if (uVertexColors) {
			vColor = vec4(aVertexColor, uOpacity);
		} else {
			vColor = vec4(uColor, uOpacity);
		}
	}
`

const vsMeshSource = `#version 300 es
	layout (location = 0) in vec4 aVertexPosition;
	uniform mat4 uModelViewMatrix;
	uniform mat4 uProjectionMatrix;
	uniform mat4 uModelMatrix;
	uniform vec3 uColor;
	uniform float uOpacity;
	out lowp vec4 vColor;

	void main(void) {
		gl_Position = uProjectionMatrix * uModelViewMatrix * uModelMatrix * aVertexPosition;
		vColor = vec4(uColor, uOpacity);
	}
`

const fsSource = `#version 300 es
	in lowp vec4 vColor;
	out lowp vec4 outColor;

	void main(void) {
		outColor = vColor;
	}
`
